// context.go - the host audio contract

package graphcore

// AudioContext is implemented by the host. The engine requires
// NFrames() <= MaxBlockSize; hosts delivering larger buffers must chunk
// their calls.
type AudioContext interface {
	NFrames() int
	Output(channel, frame int, v float32)
	Input(channel, frame int) float32
}

// Context is a plain-slice AudioContext implementation, used by TestRun
// and suitable for any host that already has one sample slice per
// channel in hand (e.g. a file renderer or a unit test).
type Context struct {
	Frames int
	Out    [][]float32
	In     [][]float32
}

func (c *Context) NFrames() int { return c.Frames }

func (c *Context) Output(channel, frame int, v float32) {
	if channel < len(c.Out) && frame < len(c.Out[channel]) {
		c.Out[channel][frame] = v
	}
}

func (c *Context) Input(channel, frame int) float32 {
	if channel < len(c.In) && frame < len(c.In[channel]) {
		return c.In[channel][frame]
	}
	return 0
}
