package glapp

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/sonnet/engine/util"
)

func CheckForGLError() {
	errorCodeOfGL := gl.GetError()

	if errorCodeOfGL != gl.NO_ERROR {
		util.LogGlError(fmt.Sprintf("GL error: %v", errorCodeOfGL))
	}
}

// FlipYProjection shows y-down normalized text the right way up in clip space.
func FlipYProjection() mgl32.Mat4 {
	return mgl32.Scale3D(1, -1, 1)
}
