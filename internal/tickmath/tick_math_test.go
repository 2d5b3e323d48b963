package tickmath

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fromString(s string) *big.Int {
	n, _ := new(big.Int).SetString(s, 10)
	return n
}

func TestGetSqrtRatioAtTick(t *testing.T) {
	t.Run("rejects too low", func(t *testing.T) {
		_, err := GetSqrtRatioAtTick(MinTick - 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTickOutOfRange)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("rejects too high", func(t *testing.T) {
		_, err := GetSqrtRatioAtTick(MaxTick + 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("min tick", func(t *testing.T) {
		got, err := GetSqrtRatioAtTick(MinTick)
		require.NoError(t, err)
		assert.Zero(t, MinSqrtRatio.Cmp(got))
	})

	t.Run("max tick", func(t *testing.T) {
		got, err := GetSqrtRatioAtTick(MaxTick)
		require.NoError(t, err)
		assert.Zero(t, MaxSqrtRatio.Cmp(got))
	})

	t.Run("known ticks", func(t *testing.T) {
		cases := []struct {
			tick int32
			want string
		}{
			{MinTick + 1, "4295343490"},
			{-276225, "79621399713875071892544"},
			{-74960, "1867347940144814999763724772"},
			{-50, "79030349367926598376800521322"},
			{-1, "79224201403219477170569942574"},
			{0, "79228162514264337593543950336"},
			{1, "79232123823359799118286999568"},
			{50, "79426470787362580746886972461"},
			{100, "79625275426524748796330556128"},
			{74959, "3361338167835132711715500004363"},
			{MaxTick - 1, "1461373636630004318706518188784493106690254656249"},
		}
		for _, tc := range cases {
			got, err := GetSqrtRatioAtTick(tc.tick)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String(), "tick %d", tc.tick)
		}
	})

	t.Run("strictly increasing", func(t *testing.T) {
		prev, err := GetSqrtRatioAtTick(MinTick)
		require.NoError(t, err)
		for tick := MinTick + 1; tick <= MaxTick; tick += 997 {
			cur, err := GetSqrtRatioAtTick(tick)
			require.NoError(t, err)
			require.Equal(t, 1, cur.Cmp(prev), "tick %d", tick)
			prev = cur
		}
	})
}

func TestGetTickAtSqrtRatio(t *testing.T) {
	t.Run("rejects too low", func(t *testing.T) {
		_, err := GetTickAtSqrtRatio(new(big.Int).Sub(MinSqrtRatio, big.NewInt(1)))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSqrtRatioOutOfRange)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("rejects max ratio", func(t *testing.T) {
		_, err := GetTickAtSqrtRatio(MaxSqrtRatio)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("rejects nil", func(t *testing.T) {
		_, err := GetTickAtSqrtRatio(nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("ratio of min tick", func(t *testing.T) {
		tick, err := GetTickAtSqrtRatio(MinSqrtRatio)
		require.NoError(t, err)
		assert.Equal(t, MinTick, tick)
	})

	t.Run("ratio of min tick + 1", func(t *testing.T) {
		tick, err := GetTickAtSqrtRatio(fromString("4295343490"))
		require.NoError(t, err)
		assert.Equal(t, MinTick+1, tick)
	})

	t.Run("ratio closest to max tick", func(t *testing.T) {
		tick, err := GetTickAtSqrtRatio(new(big.Int).Sub(MaxSqrtRatio, big.NewInt(1)))
		require.NoError(t, err)
		assert.Equal(t, MaxTick-1, tick)
	})

	t.Run("ratio of max tick - 1", func(t *testing.T) {
		tick, err := GetTickAtSqrtRatio(fromString("1461373636630004318706518188784493106690254656249"))
		require.NoError(t, err)
		assert.Equal(t, MaxTick-1, tick)
	})

	t.Run("q96 is tick zero", func(t *testing.T) {
		tick, err := GetTickAtSqrtRatio(fromString("79228162514264337593543950336"))
		require.NoError(t, err)
		assert.Equal(t, int32(0), tick)
	})
}

func TestTickRoundTrip(t *testing.T) {
	ticks := []int32{MinTick, MinTick + 1, -276225, -74960, -1, 0, 1, 74959, MaxTick - 1}
	for tick := MinTick; tick < MaxTick; tick += 1009 {
		ticks = append(ticks, tick)
	}

	for _, tick := range ticks {
		ratio, err := GetSqrtRatioAtTick(tick)
		require.NoError(t, err)

		got, err := GetTickAtSqrtRatio(ratio)
		require.NoError(t, err)
		require.Equal(t, tick, got, "round trip")

		if tick > MinTick {
			below, err := GetTickAtSqrtRatio(new(big.Int).Sub(ratio, big.NewInt(1)))
			require.NoError(t, err)
			require.Equal(t, tick-1, below, "floor just below tick %d", tick)
		}

		next, err := GetSqrtRatioAtTick(tick + 1)
		require.NoError(t, err)
		mid := new(big.Int).Add(ratio, next)
		mid.Rsh(mid, 1)
		got, err = GetTickAtSqrtRatio(mid)
		require.NoError(t, err)
		require.Equal(t, tick, got, "floor between tick %d and the next", tick)
	}
}

func TestTickAtSqrtRatioRandomFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	one := big.NewInt(1)

	checked := 0
	for checked < 20000 {
		// log-uniform over [2^32, 2^160)
		bits := uint(32 + rng.Intn(128))
		ratio := new(big.Int).Rand(rng, new(big.Int).Lsh(one, bits))
		ratio.SetBit(ratio, int(bits), 1)
		if ratio.Cmp(MinSqrtRatio) < 0 || ratio.Cmp(MaxSqrtRatio) >= 0 {
			continue
		}
		checked++

		tick, err := GetTickAtSqrtRatio(ratio)
		require.NoError(t, err)

		low, err := GetSqrtRatioAtTick(tick)
		require.NoError(t, err)
		high, err := GetSqrtRatioAtTick(tick + 1)
		require.NoError(t, err)
		require.True(t, low.Cmp(ratio) <= 0 && ratio.Cmp(high) < 0, "ratio %s mapped to tick %d", ratio, tick)
	}
}

func TestEncodeSqrtRatioX96(t *testing.T) {
	cases := []struct {
		amount1, amount0 int64
		want             string
	}{
		{1, 1, "79228162514264337593543950336"},
		{100, 1, "792281625142643375935439503360"},
		{1, 100, "7922816251426433759354395033"},
		{111, 333, "45742400955009932534161870629"},
		{333, 111, "137227202865029797602485611888"},
	}
	for _, tc := range cases {
		got, err := EncodeSqrtRatioX96(big.NewInt(tc.amount1), big.NewInt(tc.amount0))
		require.NoError(t, err)
		assert.Equal(t, tc.want, got.String())
	}

	_, err := EncodeSqrtRatioX96(big.NewInt(1), big.NewInt(0))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = EncodeSqrtRatioX96(big.NewInt(-1), big.NewInt(1))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = EncodeSqrtRatioX96(nil, big.NewInt(1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSqrtRatioLadder(t *testing.T) {
	for i, step := range SqrtRatioLadder {
		require.NotNil(t, step, "step %d", i)
		assert.LessOrEqual(t, step.BitLen(), 128, "step %d", i)
	}
}
