package game

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	high    int
	readErr error
	writes  []int
}

func (s *memStore) HighScore(context.Context) (int, error) {
	return s.high, s.readErr
}

func (s *memStore) SaveHighScore(_ context.Context, score int) error {
	s.writes = append(s.writes, score)
	s.high = score
	return nil
}

func playFull(t *testing.T, m *Machine, brightness float64) Result {
	t.Helper()
	ctx := context.Background()
	m.Start()
	for i := 0; i < SessionSeconds-1; i++ {
		m.Observe(brightness, brightness > 0)
		_, done := m.Tick(ctx)
		require.False(t, done, "session ended early at tick %d", i+1)
	}
	m.Observe(brightness, brightness > 0)
	res, done := m.Tick(ctx)
	require.True(t, done)
	return res
}

func TestStartResetsSession(t *testing.T) {
	m := NewMachine(context.Background(), nil, nil)
	m.Start()
	m.Observe(1, true)
	m.Tick(context.Background())
	m.Start()
	s := m.Session()
	assert.True(t, s.Active)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, SessionSeconds, s.SecondsRemaining)
}

func TestFullBrightnessScoresSixHundred(t *testing.T) {
	st := &memStore{}
	m := NewMachine(context.Background(), st, nil)
	res := playFull(t, m, 1.0)
	assert.Equal(t, 600, res.Score)
	assert.True(t, res.NewHigh)
	assert.Equal(t, []int{600}, st.writes)
	assert.False(t, m.Session().Active)
	assert.Equal(t, 600, m.HighScore())
}

func TestScoreFloorsBrightness(t *testing.T) {
	m := NewMachine(context.Background(), nil, nil)
	m.Start()
	m.Observe(0.59, true)
	m.Tick(context.Background())
	assert.Equal(t, 5, m.Session().Score)
}

func TestDarkBulbScoresNothing(t *testing.T) {
	m := NewMachine(context.Background(), nil, nil)
	res := playFull(t, m, 0)
	assert.Equal(t, 0, res.Score)
	assert.False(t, res.NewHigh)
}

func TestEqualScoreDoesNotWrite(t *testing.T) {
	st := &memStore{high: 600}
	m := NewMachine(context.Background(), st, nil)
	res := playFull(t, m, 1.0)
	assert.False(t, res.NewHigh)
	assert.Empty(t, st.writes)
	assert.Equal(t, 600, m.HighScore())
}

func TestReadFailureTreatedAsZero(t *testing.T) {
	st := &memStore{high: 999, readErr: errors.New("corrupt")}
	m := NewMachine(context.Background(), st, nil)
	assert.Equal(t, 0, m.HighScore())
}

func TestTickWhileIdleIsNoop(t *testing.T) {
	m := NewMachine(context.Background(), nil, nil)
	m.Observe(1, true)
	_, done := m.Tick(context.Background())
	assert.False(t, done)
	assert.Equal(t, Session{}, m.Session())
}

func TestStopAbandonsWithoutPersisting(t *testing.T) {
	st := &memStore{}
	m := NewMachine(context.Background(), st, nil)
	m.Start()
	m.Observe(1, true)
	m.Tick(context.Background())
	m.Stop()
	assert.False(t, m.Session().Active)
	assert.Empty(t, st.writes)
	assert.Equal(t, 0, m.HighScore())
}
