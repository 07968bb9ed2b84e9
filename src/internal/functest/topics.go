package functest

import (
	"fmt"
	"os"
	"sync"
)

var topics struct {
	mutex sync.Mutex
	count int
}

// NewTopic returns a request topic name that is unique to this process.
func NewTopic() string {
	topics.mutex.Lock()
	defer topics.mutex.Unlock()

	topics.count++

	return fmt.Sprintf("userstore-functest.%d.%d", os.Getpid(), topics.count)
}
