package inputs

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Helper to convert a wrap mode name to the OpenGL constant.
func getWrapMode(wrap string) int32 {
	switch wrap {
	case "repeat":
		return gl.REPEAT
	case "clamp":
		return gl.CLAMP_TO_EDGE
	default:
		return gl.REPEAT
	}
}

// Helper to convert a filter name to OpenGL constants.
func getFilterMode(filter string) (minFilter, magFilter int32) {
	switch filter {
	case "mipmap":
		return gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR
	case "linear":
		return gl.LINEAR, gl.LINEAR
	case "nearest":
		return gl.NEAREST, gl.NEAREST
	default:
		return gl.LINEAR, gl.LINEAR
	}
}

// VFlip copies src into dst with the row order reversed. Both buffers hold
// height rows of rowSize bytes.
func VFlip(dst, src []byte, rowSize, height int) {
	for y := 0; y < height; y++ {
		srcRow := src[((height-1)-y)*rowSize:]
		copy(dst[y*rowSize:(y+1)*rowSize], srcRow[:rowSize])
	}
}
