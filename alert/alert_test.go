package alert_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shiftwatch/sessionguard/alert"
)

func TestCollectSink(t *testing.T) {
	var sink alert.CollectSink

	sink.Warn("role not selected")
	sink.Error("upload rejected")
	sink.Error("impersonation target invalid")

	require.Equal(t, []string{"role not selected"}, sink.Warnings())
	require.Equal(t, []string{"upload rejected", "impersonation target invalid"}, sink.Errors())
}

func TestNoOpSink(t *testing.T) {
	var sink alert.Sink = alert.NoOpSink{}
	sink.Warn("dropped")
	sink.Error("dropped")
}
