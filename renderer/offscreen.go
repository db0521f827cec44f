package renderer

import (
	"fmt"
	"io"
	"log"
	"runtime"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	inputs "github.com/richinsley/gogradient/inputs"
	options "github.com/richinsley/gogradient/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame represents a single rendered frame's data, ready for encoding.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// OffscreenRenderer is an RGBA8 framebuffer frames are rendered into when
// there is no visible window.
type OffscreenRenderer struct {
	fbo               uint32
	textureID         uint32
	depthRenderbuffer uint32
	width             int
	height            int
	readback          []byte
}

const numBuffers = 3 // frames in flight between the renderer and the encoder

func NewOffscreenRenderer(width, height int) (*OffscreenRenderer, error) {
	or := &OffscreenRenderer{
		width:    width,
		height:   height,
		readback: make([]byte, width*height*4),
	}

	gl.GenFramebuffers(1, &or.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)
	gl.GenTextures(1, &or.textureID)
	gl.BindTexture(gl.TEXTURE_2D, or.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, or.textureID, 0)
	gl.GenRenderbuffers(1, &or.depthRenderbuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, or.depthRenderbuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, or.depthRenderbuffer)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		or.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete (status 0x%x)", status)
	}

	log.Printf("Offscreen FBO: %dx%d RGBA8", width, height)
	return or, nil
}

func (or *OffscreenRenderer) Bind()   { gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo) }
func (or *OffscreenRenderer) Unbind() { gl.BindFramebuffer(gl.FRAMEBUFFER, 0) }

func (or *OffscreenRenderer) Destroy() {
	gl.DeleteFramebuffers(1, &or.fbo)
	gl.DeleteTextures(1, &or.textureID)
	gl.DeleteRenderbuffers(1, &or.depthRenderbuffer)
}

// ReadPixels returns the framebuffer content as top-down RGBA rows in a new
// slice.
func (or *OffscreenRenderer) ReadPixels() []byte {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, or.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(or.width), int32(or.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&or.readback[0]))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	out := make([]byte, len(or.readback))
	inputs.VFlip(out, or.readback, or.width*4, or.height)
	return out
}

// encoderArgs returns the ffmpeg arguments for raw RGBA input of the given
// size, picking the platform's hardware H.264 encoder where one is always
// available.
func encoderArgs(goos string, width, height, fps int) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": fps,
	}

	outputArgs = ffmpeg.KwArgs{
		"pix_fmt": "yuv420p",
	}
	switch goos {
	case "darwin":
		outputArgs["c:v"] = "h264_videotoolbox"
		outputArgs["b:v"] = "12M"
	default:
		outputArgs["c:v"] = "libx264"
		outputArgs["preset"] = "medium"
		outputArgs["crf"] = 18
	}
	return
}

// runEncoder is the consumer. It starts ffmpeg and feeds it frames until
// frameChan is closed.
func runEncoder(opts *options.Options, width, height int, frameChan <-chan *Frame, doneChan chan<- error) {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := encoderArgs(runtime.GOOS, width, height, *opts.FPS)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if *opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// Unblock the writer if ffmpeg exits early.
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	var writeErr error
	for frame := range frameChan {
		if writeErr != nil {
			continue
		}
		if _, err := pipeWriter.Write(frame.Pixels); err != nil {
			writeErr = fmt.Errorf("failed to write frame %d to ffmpeg: %w", frame.PTS, err)
			log.Println(writeErr)
		}
	}
	pipeWriter.Close()

	if err := <-errc; err != nil {
		doneChan <- fmt.Errorf("ffmpeg failed: %w", err)
		return
	}
	doneChan <- writeErr
}

// RunRecord is the producer. It renders duration*fps frames at a fixed step
// through d and streams them to ffmpeg.
func (r *Renderer) RunRecord(d *Driver, opts *options.Options) error {
	if r.offscreen == nil {
		return fmt.Errorf("renderer was not created in record mode")
	}
	log.Println("Starting in record mode...")
	frameChan := make(chan *Frame, numBuffers)
	encoderDoneChan := make(chan error, 1)

	go runEncoder(opts, r.width, r.height, frameChan, encoderDoneChan)

	totalFrames := int(*opts.Duration * float64(*opts.FPS))
	var renderErr error
	for i := 0; i < totalFrames; i++ {
		if err := d.Tick(); err != nil {
			renderErr = err
			break
		}
		frameChan <- &Frame{Pixels: r.offscreen.ReadPixels(), PTS: int64(i)}
		if (i+1)%(*opts.FPS) == 0 {
			log.Printf("Rendered %d/%d frames", i+1, totalFrames)
		}
	}

	close(frameChan)
	encErr := <-encoderDoneChan
	if renderErr != nil {
		return renderErr
	}
	return encErr
}
