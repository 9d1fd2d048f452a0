package interp

import (
	"fmt"
	"os"

	"github.com/josephlewis42/nestsh/core/dirstate"
	"github.com/josephlewis42/nestsh/core/proc"
)

type pipe struct {
	r, w *os.File
}

// runPipeline connects stages with pipes and runs each stage in its own
// child interpreter. The status is that of the last stage.
//
// All pipes exist before the first stage starts. Children only receive the
// two ends wired to their stdin and stdout; every other descriptor is close
// on exec. This process closes all ends once every stage has started and
// then waits for the stages in the order they were started.
func (in *Interpreter) runPipeline(stages []string, dir *dirstate.State) int {
	switch len(stages) {
	case 0:
		return proc.StatusSuccess
	case 1:
		return in.Interpret(stages[0], dir)
	}

	pipes := make([]pipe, 0, len(stages)-1)
	closePipes := func() {
		for _, p := range pipes {
			p.r.Close()
			p.w.Close()
		}
	}

	for i := 0; i < len(stages)-1; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			closePipes()
			return in.spawnFailure(stages, fmt.Errorf("pipe: %w", err))
		}
		pipes = append(pipes, pipe{r: r, w: w})
	}

	var (
		started  []*proc.Process
		spawnErr error
	)
	for i, stage := range stages {
		stdio := in.Stdio
		if i > 0 {
			stdio.In = pipes[i-1].r
		}
		if i < len(stages)-1 {
			stdio.Out = pipes[i].w
		}

		p, err := in.startChild(childStage, stageArgs(dir, stage), stdio)
		if err != nil {
			spawnErr = fmt.Errorf("pipeline stage %d: %w", i, err)
			break
		}
		started = append(started, p)
	}
	closePipes()

	status := proc.StatusSuccess
	for _, p := range started {
		status = p.Wait()
	}

	if spawnErr != nil {
		return in.spawnFailure(stages, spawnErr)
	}
	return status
}

func stageArgs(dir *dirstate.State, text string) []string {
	return []string{"--last=" + dir.Last, "--", text}
}
