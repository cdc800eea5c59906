package waveform

import (
	"fmt"
	"sync"

	"github.com/tphakala/go-waveform-encoder/wave"
)

// EncodeBatch encodes several texts with the same configuration. Results are
// returned in input order. When EnableParallel is set, texts are encoded
// concurrently; otherwise sequentially.
func (e *Encoder) EncodeBatch(texts []string) ([]*wave.Matrix, error) {
	output := make([]*wave.Matrix, len(texts))

	if !e.config.EnableParallel || len(texts) <= 1 {
		for i, text := range texts {
			m, err := e.Encode(text)
			if err != nil {
				return nil, fmt.Errorf("text %d: %w", i, err)
			}
			output[i] = m
		}
		return output, nil
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(texts))

	for i := range texts {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			m, err := e.Encode(texts[idx])
			if err != nil {
				errChan <- fmt.Errorf("text %d: %w", idx, err)
				return
			}
			output[idx] = m
		}(i)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	return output, nil
}
