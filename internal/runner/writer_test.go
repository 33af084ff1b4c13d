package runner

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// blockingStore holds the first write until released.
type blockingStore struct {
	entered chan int
	release chan struct{}
	writes  []int
}

func (b *blockingStore) ReadHighScore(string) (int, error) { return 0, nil }

func (b *blockingStore) WriteHighScore(board string, score int) error {
	if len(b.writes) == 0 {
		b.entered <- score
		<-b.release
	}
	b.writes = append(b.writes, score)
	return nil
}

func TestScoreWriterLatestWins(t *testing.T) {
	store := &blockingStore{entered: make(chan int), release: make(chan struct{})}
	w := newScoreWriter(store, nil, "20x20", "s", log.New(io.Discard))

	w.setHighScore(10)
	select {
	case <-store.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("writer never started")
	}

	w.setHighScore(20)
	w.setHighScore(30)
	close(store.release)
	w.close()

	if len(store.writes) != 2 || store.writes[0] != 10 || store.writes[1] != 30 {
		t.Errorf("writes = %v, expected [10 30]", store.writes)
	}
}

type failingStore struct{ calls int }

func (f *failingStore) ReadHighScore(string) (int, error) { return 0, nil }
func (f *failingStore) WriteHighScore(string, int) error {
	f.calls++
	return errors.New("read-only database")
}

func TestScoreWriterSwallowsErrors(t *testing.T) {
	store := &failingStore{}
	w := newScoreWriter(store, nil, "20x20", "s", log.New(io.Discard))
	w.setHighScore(10)
	w.close()
	w.close()
	w.setHighScore(20)

	if store.calls != 1 {
		t.Errorf("WriteHighScore called %d times, expected 1", store.calls)
	}
}
