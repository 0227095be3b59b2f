package hash

import "golang.org/x/sync/errgroup"

// SumAllConcurrent computes the ASCON-HASHA digest of every input
// independently and concurrently, one goroutine per input, each with its
// own sponge state (the permutation state is never safe to share across
// goroutines — see the concurrency notes in this module's top-level
// documentation). It is meant for bulk manifest hashing, where a caller
// has many independent files/blobs to digest and wants to use more than
// one core without hand-rolling a worker pool.
func SumAllConcurrent(inputs [][]byte) ([][Size]byte, error) {
	out := make([][Size]byte, len(inputs))
	var g errgroup.Group
	for i, data := range inputs {
		i, data := i, data
		g.Go(func() error {
			out[i] = Sum256A(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
