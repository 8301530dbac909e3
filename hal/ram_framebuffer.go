package hal

// RAMFramebuffer is a plain RGB565 buffer with a no-op Present. Targets
// without a panel driver render into it, and so do tests.
type RAMFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte

	presents int
}

func NewRAMFramebuffer(w, h int) *RAMFramebuffer {
	stride := w * 2
	return &RAMFramebuffer{
		w:      w,
		h:      h,
		stride: stride,
		buf:    make([]byte, stride*h),
	}
}

func (f *RAMFramebuffer) Width() int          { return f.w }
func (f *RAMFramebuffer) Height() int         { return f.h }
func (f *RAMFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *RAMFramebuffer) StrideBytes() int    { return f.stride }
func (f *RAMFramebuffer) Buffer() []byte      { return f.buf }

func (f *RAMFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := RGB565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *RAMFramebuffer) Present() error {
	f.presents++
	return nil
}

// Presents counts Present calls.
func (f *RAMFramebuffer) Presents() int { return f.presents }
