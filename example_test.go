package bdgr_test

import (
	"bytes"
	"fmt"
	"log"

	"github.com/mseriukov/bdgr"
)

func Example() {
	// A tiny 4x2 plane with a smooth ramp.
	src := []byte{
		10, 11, 12, 13,
		10, 11, 12, 13,
	}
	const width, height = 4, 2

	dst := make([]byte, bdgr.Bound(width, height))
	written, err := bdgr.Encode(dst, src, width, height)
	if err != nil {
		log.Fatalln(err)
	}

	w, h, err := bdgr.Header(dst[:written])
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("%dx%d frame, %d bytes encoded\n", w, h, written)

	out := make([]byte, width*height)
	if _, err := bdgr.Decode(out, dst[:written], width, height); err != nil {
		log.Fatalln(err)
	}
	fmt.Println("round trip exact:", bytes.Equal(src, out))

	// Output:
	// 4x2 frame, 8 bytes encoded
	// round trip exact: true
}
