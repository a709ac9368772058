// bdgr is a tool which compresses 8-bit grayscale PGM images to bdgr
// streams and back.
package main

import (
	"fmt"
	"os"

	"github.com/mewkiz/pkg/osutil"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/spf13/cobra"

	"github.com/mseriukov/bdgr"
)

// Flags
var (
	force   bool
	med     bool
	runMode bool
	near    int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bdgr",
	Short: "Lossless compression for 8-bit grayscale images",
	Long: `bdgr - lossless and near-lossless codec for 8-bit grayscale images

Compresses binary PGM (P5) images to bdgr streams and back. The stream
records only the frame dimensions, so the --med, --run and --near options
used to compress a file must be repeated to decompress it.`,
	SilenceUsage: true,
}

var compressCmd = &cobra.Command{
	Use:   "compress FILE.pgm...",
	Short: "Compress PGM images to bdgr streams",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			if err := compress(path); err != nil {
				return err
			}
		}
		return nil
	},
}

var decompressCmd = &cobra.Command{
	Use:   "decompress FILE.bdgr...",
	Short: "Decompress bdgr streams to PGM images",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			if err := decompress(path); err != nil {
				return err
			}
		}
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info FILE.bdgr...",
	Short: "Print stream header information",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			if err := info(path); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{compressCmd, decompressCmd} {
		cmd.Flags().BoolVarP(&force, "force", "f", false, "Force overwrite of existing output files")
		cmd.Flags().BoolVar(&med, "med", false, "Use the median edge detector predictor")
		cmd.Flags().BoolVar(&runMode, "run", false, "Enable run mode on flat regions (implies --med)")
		cmd.Flags().IntVar(&near, "near", 0, "Near-lossless tolerance, 0 for lossless (implies --med)")
	}
	rootCmd.AddCommand(compressCmd, decompressCmd, infoCmd)
}

// options maps the command line flags onto codec options.
func options() bdgr.Options {
	opts := bdgr.Options{Near: near, RunMode: runMode}
	if med || runMode || near != 0 {
		opts.Predictor = bdgr.PredMED
	}
	return opts
}

// create opens the output file, refusing to clobber an existing one unless
// forced.
func create(path string) (*os.File, error) {
	if !force {
		exists, err := osutil.Exists(path)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("the file %q exists already", path)
		}
	}
	return os.Create(path)
}

// compress converts the provided PGM file to a bdgr stream.
func compress(path string) error {
	pix, width, height, err := readPGM(path)
	if err != nil {
		return err
	}

	dst := make([]byte, bdgr.Bound(width, height))
	written, err := bdgr.EncodeWith(dst, pix, width, height, options())
	if err != nil {
		return err
	}

	outPath := pathutil.TrimExt(path) + ".bdgr"
	f, err := create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(dst[:written]); err != nil {
		return err
	}

	raw := width * height
	fmt.Printf("%s: %dx%d, %d -> %d bytes (%.1f%%)\n",
		outPath, width, height, raw, written, float64(written)/float64(raw)*100)
	return nil
}

// decompress converts the provided bdgr stream back to a PGM file.
func decompress(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	width, height, err := bdgr.Header(src)
	if err != nil {
		return err
	}

	pix := make([]byte, width*height)
	if _, err := bdgr.DecodeWith(pix, src, width, height, options()); err != nil {
		return err
	}

	outPath := pathutil.TrimExt(path) + ".pgm"
	f, err := create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := writePGM(f, pix, width, height); err != nil {
		return err
	}

	fmt.Printf("%s: %dx%d, %d -> %d bytes\n", outPath, width, height, len(src), width*height)
	return nil
}

// info prints the dimensions recorded in the stream header.
func info(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	width, height, err := bdgr.Header(src)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %dx%d, %d bytes\n", path, width, height, len(src))
	return nil
}
