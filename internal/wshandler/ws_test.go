package wshandler

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brm5/taccom/internal/model"
)

func TestSendAfterStop(t *testing.T) {
	h := NewHandler(slog.Default(), "test", nil)

	require.True(t, h.IsActive())
	require.True(t, h.SendMission(&model.MissionDTO{UID: "m1"}))

	h.stop()

	require.False(t, h.IsActive())
	require.False(t, h.SendMission(&model.MissionDTO{UID: "m2"}))
	require.False(t, h.DeleteMission("m2"))
}

func TestStopIdempotent(t *testing.T) {
	h := NewHandler(slog.Default(), "test", nil)

	h.stop()
	h.stop()

	require.False(t, h.IsActive())
}

func TestSendRacingDisconnect(t *testing.T) {
	for i := 0; i < 100; i++ {
		h := NewHandler(slog.Default(), "test", nil)

		var wg sync.WaitGroup

		for j := 0; j < 4; j++ {
			wg.Add(1)

			go func(n int) {
				defer wg.Done()

				for k := 0; k < 20; k++ {
					if n%2 == 0 {
						h.SendMission(&model.MissionDTO{UID: "m1"})
					} else {
						h.DeleteMission("m1")
					}
				}
			}(j)
		}

		wg.Add(1)

		go func() {
			defer wg.Done()
			h.stop()
		}()

		wg.Wait()
		require.False(t, h.IsActive())
	}
}

func TestNilHandler(t *testing.T) {
	var h *JSONWsHandler

	require.False(t, h.IsActive())
	require.False(t, h.SendMission(&model.MissionDTO{UID: "m1"}))
	require.False(t, h.DeleteMission("m1"))
}
