package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocLocks_SameIDWaits(t *testing.T) {
	var l docLocks

	unlock := l.lock("d1")

	acquired := make(chan struct{})
	go func() {
		u := l.lock("d1")
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock of d1 acquired while the first was held")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()
	<-acquired
	assert.Eventually(t, func() bool { return l.held() == 0 }, time.Second, time.Millisecond)
}

func TestDocLocks_DifferentIDsDoNotBlock(t *testing.T) {
	var l docLocks

	unlockA := l.lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		l.lock("b")()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock of b blocked on a")
	}
}

func TestDocLocks_EntriesReleased(t *testing.T) {
	var l docLocks

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.lock("shared")()
		}()
	}
	wg.Wait()

	assert.Zero(t, l.held())
}
