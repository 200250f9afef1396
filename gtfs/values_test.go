package gtfs

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Date
		wantErr  bool
	}{
		{"regular date", "20240315", Date{2024, time.March, 15}, false},
		{"leap day", "20240229", Date{2024, time.February, 29}, false},
		{"surrounding spaces", " 20240101 ", Date{2024, time.January, 1}, false},
		{"non leap year", "20230229", Date{}, true},
		{"month 13", "20241301", Date{}, true},
		{"day zero", "20240100", Date{}, true},
		{"too short", "2024011", Date{}, true},
		{"dashes", "2024-01-01", Date{}, true},
		{"letters", "2024O101", Date{}, true},
		{"empty", "", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeDate(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDate)
				var decodeErr *DecodeError
				require.True(t, errors.As(err, &decodeErr))
				assert.Equal(t, tt.raw, decodeErr.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("round trips every day of a leap year", func(t *testing.T) {
		day := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		for day.Year() == 2024 {
			raw := day.Format("20060102")
			got, err := DecodeDate(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, raw, got.String())
			assert.True(t, got.Time(time.UTC).Equal(day))
			day = day.AddDate(0, 0, 1)
		}
	})

	t.Run("orders dates", func(t *testing.T) {
		a := Date{2024, time.January, 31}
		b := Date{2024, time.February, 1}
		assert.True(t, a.Before(b))
		assert.False(t, b.Before(a))
		assert.False(t, a.Before(a))
	})
}

func TestDecodeServiceTime(t *testing.T) {
	t.Run("seconds since midnight for hours up to 47", func(t *testing.T) {
		for h := 0; h <= 47; h++ {
			for _, ms := range [][2]int{{0, 0}, {30, 15}, {59, 59}} {
				raw := fmt.Sprintf("%02d:%02d:%02d", h, ms[0], ms[1])
				got, err := DecodeServiceTime(raw)
				require.NoError(t, err, raw)
				assert.Equal(t, ServiceTime(h*3600+ms[0]*60+ms[1]), got)
				assert.Equal(t, raw, got.String())
			}
		}
	})

	t.Run("after midnight sorts after same day", func(t *testing.T) {
		late, err := DecodeServiceTime("23:59:59")
		require.NoError(t, err)
		next, err := DecodeServiceTime("25:30:00")
		require.NoError(t, err)
		assert.Less(t, late, next)
		assert.Equal(t, 25*time.Hour+30*time.Minute, next.Duration())
	})

	t.Run("single digit hour", func(t *testing.T) {
		got, err := DecodeServiceTime("8:05:00")
		require.NoError(t, err)
		assert.Equal(t, ServiceTime(8*3600+5*60), got)
	})

	t.Run("largest hour", func(t *testing.T) {
		got, err := DecodeServiceTime(fmt.Sprintf("%d:59:59", maxServiceHours))
		require.NoError(t, err)
		assert.Equal(t, maxServiceHours, got.Hours())
	})

	invalid := []string{
		"", "08:00", "08:60:00", "08:00:60", "8:5:00", "aa:00:00", "08:00:00:00", "-1:00:00",
		"9000000000000000:00:00", "99999999999999999999:00:00", fmt.Sprintf("%d:00:00", maxServiceHours+1),
	}
	for _, raw := range invalid {
		t.Run("rejects "+raw, func(t *testing.T) {
			_, err := DecodeServiceTime(raw)
			assert.ErrorIs(t, err, ErrInvalidTime)
		})
	}
}

func TestDecodeColor(t *testing.T) {
	tests := []struct {
		raw      string
		expected Color
		wantErr  bool
	}{
		{"FF0000", Color{R: 0xFF}, false},
		{"00ff7f", Color{G: 0xFF, B: 0x7F}, false},
		{"aBcDeF", Color{R: 0xAB, G: 0xCD, B: 0xEF}, false},
		{"FFF", Color{}, true},
		{"#FF0000", Color{}, true},
		{"GG0000", Color{}, true},
		{"FF00000", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := DecodeColor(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidColor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("renders upper case hex", func(t *testing.T) {
		c, err := DecodeColor("0a0b0c")
		require.NoError(t, err)
		assert.Equal(t, "0A0B0C", c.String())
	})
}

func TestDecodeCoordinates(t *testing.T) {
	t.Run("latitude bounds", func(t *testing.T) {
		lat, err := DecodeLatitude("-90")
		require.NoError(t, err)
		assert.Equal(t, Latitude(-90), lat)

		_, err = DecodeLatitude("90.0001")
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("longitude bounds", func(t *testing.T) {
		lon, err := DecodeLongitude("179.9999")
		require.NoError(t, err)
		assert.InDelta(t, 179.9999, float64(lon), 1e-9)

		_, err = DecodeLongitude("-180.5")
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("not a number", func(t *testing.T) {
		for _, raw := range []string{"abc", "NaN", "52,1", "", "Inf", "-infinity", "0x1p-2", "1_0"} {
			_, err := DecodeLatitude(raw)
			assert.ErrorIs(t, err, ErrNotANumber, raw)
		}
	})
}

func TestDecodeDecimalColumns(t *testing.T) {
	header := []string{"fare_id", "price", "currency_type", "payment_method", "transfers"}

	t.Run("plain decimals", func(t *testing.T) {
		for raw, want := range map[string]float64{"2.50": 2.5, "-1": -1, "1e2": 100, " 0.75 ": 0.75} {
			fare, err := DecodeRow[FareAttribute]("fare_attributes.txt",
				NewRawRow(2, header, []string{"F1", raw, "USD", "0", ""}))
			require.NoError(t, err, raw)
			assert.InDelta(t, want, fare.Price, 1e-9, raw)
		}
	})

	for _, raw := range []string{"Inf", "+Inf", "infinity", "0x1p-2", "0X10", "1_000", "1e400"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			_, err := DecodeRow[FareAttribute]("fare_attributes.txt",
				NewRawRow(2, header, []string{"F1", raw, "USD", "0", ""}))

			var rowErr *RowError
			require.True(t, errors.As(err, &rowErr))
			assert.Equal(t, "price", rowErr.Column)
			assert.ErrorIs(t, err, ErrNotANumber)
		})
	}
}

func TestDecodeFlag(t *testing.T) {
	v, err := DecodeFlag("1")
	require.NoError(t, err)
	assert.True(t, bool(v))

	v, err = DecodeFlag("0")
	require.NoError(t, err)
	assert.False(t, bool(v))

	for _, raw := range []string{"2", "true", "yes", "-1", ""} {
		_, err := DecodeFlag(raw)
		assert.ErrorIs(t, err, ErrInvalidBoolean, raw)
	}
}

func TestEnumCodes(t *testing.T) {
	t.Run("unknown codes are kept", func(t *testing.T) {
		p := PickupDropOffType(9)
		assert.False(t, p.Known())
		assert.Equal(t, "Other(9)", p.String())
		assert.True(t, PickupDropOffPhoneAgency.Known())
		assert.Equal(t, "PhoneAgency", PickupDropOffPhoneAgency.String())
	})

	t.Run("extended route types fold onto categories", func(t *testing.T) {
		tests := map[RouteType]RouteType{
			3:    RouteTypeBus,
			109:  RouteTypeRail,
			200:  RouteTypeCoach,
			401:  RouteTypeSubway,
			702:  RouteTypeBus,
			800:  RouteTypeBus,
			900:  RouteTypeTram,
			1000: RouteTypeFerry,
			1200: RouteTypeFerry,
			1100: RouteTypeAir,
			1300: RouteTypeGondola,
			1400: RouteTypeFunicular,
			1501: RouteTypeTaxi,
		}
		for code, category := range tests {
			assert.Equal(t, category, code.Category(), "code %d", code)
			assert.True(t, code.Known(), "code %d", code)
		}
	})

	t.Run("route type outside every family", func(t *testing.T) {
		rt := RouteType(300)
		assert.Equal(t, rt, rt.Category())
		assert.False(t, rt.Known())
		assert.Equal(t, "Other(300)", rt.String())
	})

	t.Run("empty transfers means unlimited", func(t *testing.T) {
		assert.Equal(t, TransfersUnlimited, FareAttribute{}.TransferLimit())
		once := TransfersOnce
		assert.Equal(t, TransfersOnce, FareAttribute{Transfers: &once}.TransferLimit())
	})
}
