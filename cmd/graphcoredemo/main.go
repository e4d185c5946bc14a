// graphcoredemo builds a small four-node patch (a tracker-driven
// sequencer quantized to a scale, driving a sine oscillator through an
// allpass diffuser) and either plays it live or bounces it to a WAV
// file.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/sigwave-audio/graphcore"
)

// Inp buffer layout for the demo patch.
const (
	inSineFreq = iota
	inSineDet
	inAllpIn
	inAllpG
	inAllpTime
	inQuantFreq
	inQuantOct
	inTSeqClock
	inOutCh0
	inputCount
)

func buildProgram() *graphcore.Program {
	prog := graphcore.Empty()
	prog.Inp = make([]graphcore.ProcBuf, inputCount)
	prog.CurInp = make([]graphcore.ProcBuf, inputCount)
	prog.Params = make([]float32, inputCount)
	prog.Atoms = make([]graphcore.Atom, 2)
	prog.Atoms[0] = graphcore.IntAtom(0)          // TSeq cmode: row-trigger
	prog.Atoms[1] = graphcore.KeySetAtom(0x0AB5) // Quant keys: major scale
	prog.OutFeedback = make([]float32, 16)

	prog.Ops = []graphcore.Op{
		{ // op0: TSeq - node slot 3
			NodeIdx: 3,
			InIdx:   inTSeqClock, InLen: 1,
			AtIdx: 0, AtLen: 1,
			OutLen: 12,
		},
		{ // op1: Quant - node slot 2
			NodeIdx: 2,
			InIdx:   inQuantFreq, InLen: 2,
			AtIdx: 1, AtLen: 1,
			OutLen: 2,
		},
		{ // op2: Sine - node slot 0
			NodeIdx: 0,
			InIdx:   inSineFreq, InLen: 2,
			OutLen: 1,
		},
		{ // op3: AllP - node slot 1
			NodeIdx: 1,
			InIdx:   inAllpIn, InLen: 3,
			OutLen: 1,
		},
		{ // op4: Out - node slot 4
			NodeIdx: 4,
			InIdx:   inOutCh0, InLen: 1,
		},
	}
	prog.AssignOutputs()

	// op0 out layout: [trk1..trk6, gat1..gat6] at indices 0..11.
	// op1 out layout: [sig, t] at 12..13.
	// op2 out: [sig] at 14.
	// op3 out: [sig] at 15.
	prog.ModOps = []*graphcore.ModOp{
		graphcore.NewModOp(&prog.Out[0], inQuantFreq),  // TSeq track1 sig -> Quant freq
		graphcore.NewModOp(&prog.Out[12], inSineFreq),  // Quant sig -> Sine freq
		graphcore.NewModOp(&prog.Out[14], inAllpIn),    // Sine sig -> AllP inp
		graphcore.NewModOp(&prog.Out[15], inOutCh0),    // AllP sig -> Out ch0
	}
	prog.ModOps[0].SetAmt(1.0)
	prog.ModOps[1].SetAmt(1.0)
	prog.ModOps[2].SetAmt(1.0)
	prog.ModOps[3].SetAmt(0.8)

	prog.Ops[0].ModIdx, prog.Ops[0].ModLen = 0, 1
	prog.Ops[1].ModIdx, prog.Ops[1].ModLen = 1, 1
	prog.Ops[2].ModIdx, prog.Ops[2].ModLen = 2, 1
	prog.Ops[3].ModIdx, prog.Ops[3].ModLen = 3, 1

	prog.InitializeInputBuffers()
	return prog
}

func buildBackend() *graphcore.BasicTrackerBackend {
	b := graphcore.NewBasicTrackerBackend(8)
	scale := []float32{0.0, 0.1, 0.2, 0.3, 0.2, 0.1, 0.0, 0.3}
	for row, v := range scale {
		b.SetCell(row, 0, v, 1.0)
	}
	b.CheckUpdates()
	return b
}

func main() {
	seconds := flag.Float64("seconds", 3.0, "duration to render")
	live := flag.Bool("live", false, "play back live instead of bouncing to a WAV file")
	out := flag.String("out", "graphcoredemo.wav", "WAV file to write when not in -live mode")
	flag.Parse()

	queue := graphcore.NewSharedQueues()
	mon := graphcore.NewPoolMonitorBackend()
	exec := graphcore.NewExecutor(queue, mon)
	exec.SetSampleRate(graphcore.DefaultSampleRate)

	tseq := graphcore.NewNodeTSeq()
	tseq.SetBackend(buildBackend())

	queue.Graph.Push(graphcore.GraphMessage{Kind: graphcore.MsgNewNode, NodeIdx: 0, Node: graphcore.NewNodeSine()})
	queue.Graph.Push(graphcore.GraphMessage{Kind: graphcore.MsgNewNode, NodeIdx: 1, Node: graphcore.NewNodeAllpass()})
	queue.Graph.Push(graphcore.GraphMessage{Kind: graphcore.MsgNewNode, NodeIdx: 2, Node: graphcore.NewNodeQuant()})
	queue.Graph.Push(graphcore.GraphMessage{Kind: graphcore.MsgNewNode, NodeIdx: 3, Node: tseq})
	queue.Graph.Push(graphcore.GraphMessage{Kind: graphcore.MsgNewNode, NodeIdx: 4, Node: graphcore.NewNodeOut(1)})
	queue.Graph.Push(graphcore.GraphMessage{Kind: graphcore.MsgNewProg, Prog: buildProgram()})
	queue.Graph.Push(graphcore.GraphMessage{
		Kind: graphcore.MsgParamUpdate, ParamIdx: inTSeqClock, ParamVal: 0,
	})
	queue.Graph.Push(graphcore.GraphMessage{
		Kind: graphcore.MsgParamUpdate, ParamIdx: inAllpG, ParamVal: 0.4,
	})
	queue.Graph.Push(graphcore.GraphMessage{
		Kind: graphcore.MsgParamUpdate, ParamIdx: inAllpTime, ParamVal: 0.1,
	})

	if *live {
		runLive(exec)
		return
	}
	if err := bounce(exec, *seconds, *out); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%.1fs)\n", *out, *seconds)
}

func runLive(exec *graphcore.Executor) {
	player, err := NewOtoPlayer(int(graphcore.DefaultSampleRate))
	if err != nil {
		log.Fatal(err)
	}
	defer player.Close()

	src := newExecSource(exec)
	src.beforeBlock = newClockDriver(exec.Queue())
	player.SetupPlayer(src)
	player.Start()

	fmt.Println("playing - press Ctrl+C to stop")
	for {
		time.Sleep(time.Second)
	}
}

// clockDriver simulates the (out of scope) editor's row clock by
// pushing an incrementing ParamUpdate for the TSeq clock input once
// per rendered block.
func newClockDriver(queue *graphcore.SharedQueues) func() {
	phase := float32(0)
	const step = float32(0.05)
	return func() {
		phase += step
		if phase >= 1 {
			phase -= 1
		}
		queue.Graph.Push(graphcore.GraphMessage{
			Kind: graphcore.MsgParamUpdate, ParamIdx: inTSeqClock, ParamVal: phase,
		})
	}
}
