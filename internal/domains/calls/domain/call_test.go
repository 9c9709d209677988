package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
		err  error
	}{
		"e164":         {in: "+14155550123", want: "+14155550123"},
		"spaced":       {in: " +44 20 7946-0958 ", want: "+442079460958"},
		"missing plus": {in: "14155550123", err: ErrInvalidPhone},
		"leading zero": {in: "+0123456789", err: ErrInvalidPhone},
		"too short":    {in: "+12345", err: ErrInvalidPhone},
		"letters":      {in: "+1415CALLME", err: ErrInvalidPhone},
		"empty":        {in: "", err: ErrInvalidPhone},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := NormalizePhone(tc.in)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestNewFailedCall(t *testing.T) {
	c := NewFailedCall("c1", "+14155550123", errors.New("voice service down"), time.Unix(0, 0))
	require.Equal(t, StatusFailed, c.Status)
	require.Equal(t, "voice service down", c.Error)
	require.Empty(t, c.CallSID)
}

func TestNewConversation(t *testing.T) {
	info := map[string]any{"name": "Ada"}
	conv, err := NewConversation("v1", " CA123 ", info, []Message{{Role: " user ", Content: "hi"}}, time.Unix(0, 0))
	require.NoError(t, err)
	require.Equal(t, "CA123", conv.CallSID)
	require.Equal(t, "user", conv.Messages[0].Role)
	info["name"] = "changed"
	require.Equal(t, "Ada", conv.UserInfo["name"])

	_, err = NewConversation("v2", "", nil, nil, time.Unix(0, 0))
	require.ErrorIs(t, err, ErrMissingCallSID)
	_, err = NewConversation("v3", "CA1", nil, []Message{{Content: "x"}}, time.Unix(0, 0))
	require.ErrorIs(t, err, ErrInvalidRole)
}
