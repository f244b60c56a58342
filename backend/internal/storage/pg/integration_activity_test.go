package pg

import (
	"testing"

	"github.com/admissible-dev/admissible-demo/backend/internal/storage/storagetest"
)

func TestActivity(t *testing.T) {
	storagetest.Run(t, storage)
}
