package mrc

import (
	"io"
	"log"

	"github.com/IvanBrykalov/kosmo/access"
	"github.com/IvanBrykalov/kosmo/trace"
)

// WSSResult reports both measures of working-set size over a trace.
type WSSResult struct {
	// WSS is the reuse-distance-style working set: the sum, over every
	// distinct key ever seen, of the largest size it was accessed at.
	WSS uint64
	// NaiveWSS sums each distinct key's first-seen size instead, ignoring
	// later accesses of the same key at a different size. The two
	// measures coincide whenever every key is requested at a constant
	// size, which makes NaiveWSS a useful sanity cross-check.
	NaiveWSS uint64
}

// ComputeWSS streams path once and reports its working-set size both ways.
func ComputeWSS(path string, logger *log.Logger) (WSSResult, error) {
	r, err := trace.Open(path)
	if err != nil {
		return WSSResult{}, newError(IoError, "open trace", err)
	}
	defer r.Close()

	progress := NewProgress(logger, r.Size())

	sizes := make(map[access.Key]uint64)
	var result WSSResult

	for {
		a, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return WSSResult{}, newError(InvalidTraceRecord, "read access", err)
		}

		if a.IsValidSelfPopulating() {
			size := uint64(a.Size)
			if existing, ok := sizes[a.Key]; ok {
				if size > existing {
					result.WSS += size - existing
					sizes[a.Key] = size
				}
			} else {
				sizes[a.Key] = size
				result.WSS += size
				result.NaiveWSS += size
			}
		}

		progress.Tick(r.BytesRead())
	}

	progress.Done()
	return result, nil
}
