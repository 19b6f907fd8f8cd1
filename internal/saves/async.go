package saves

import "context"

// LoadingState represents the state of an asynchronous catalog build.
type LoadingState int

const (
	StateIdle LoadingState = iota
	StateLoadingSaves
	StateError
)

// BuildAsync builds the catalog in a background goroutine and delivers it
// on the returned channel. Cancelling ctx makes the build finish early;
// the delivered catalog keeps the saves decoded up to that point.
func BuildAsync(ctx context.Context, dir string) <-chan *Catalog {
	resultChan := make(chan *Catalog, 1)
	go func() {
		defer close(resultChan)
		resultChan <- Build(ctx, dir)
	}()
	return resultChan
}
