package memory_test

import (
	"testing"

	"github.com/warp/shift-pay/payroll"
	"github.com/warp/shift-pay/store/memory"
	"github.com/warp/shift-pay/store/storetest"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) payroll.Store {
		return memory.New()
	})
}
