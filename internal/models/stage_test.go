package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageResult(t *testing.T) {
	ok := FromCall("天气：晴", nil)
	assert.True(t, ok.IsSuccess())
	assert.Equal(t, "天气：晴", ok.Value)

	boom := errors.New("timeout")
	bad := FromCall("", boom)
	assert.True(t, bad.IsFatal())
	assert.ErrorIs(t, bad.Err, boom)

	soft := Recoverable[*GeneratedAsset]("no image produced")
	assert.False(t, soft.IsFatal())
	assert.False(t, soft.IsSuccess())
	assert.Nil(t, soft.Value)
	assert.Equal(t, "no image produced", soft.Reason)
}
