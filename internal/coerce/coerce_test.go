package coerce

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbzesq/npl-vision-2/internal/schema"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
		want string
	}{
		{"formatted dollars", String("$1,250,000.00"), "1250000"},
		{"plain number string", String("1250000.50"), "1250000.5"},
		{"native number", Number(42500), "42500"},
		{"spaces around symbol", String(" $ 500.25 "), "500.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Currency(tt.raw)
			require.NotNil(t, got)
			d, ok := got.(decimal.Decimal)
			require.True(t, ok)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestCurrency_Malformed(t *testing.T) {
	assert.Nil(t, Currency(String("N/A")))
	assert.Nil(t, Currency(String("1,2,3,abc")))
	assert.Nil(t, Currency(Nil()))
}

func TestRate_PercentVsFraction(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
		want float64
	}{
		{"percent string", String("5"), 0.05},
		{"fraction string", String("0.05"), 0.05},
		{"percent with decimals", String("7.25"), 0.0725},
		{"native percent", Number(12.5), 0.125},
		{"native fraction", Number(0.0375), 0.0375},
		{"exactly one stays", Number(1), 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rate(tt.raw)
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, got.(float64), 1e-9)
		})
	}
}

func TestRate_Malformed(t *testing.T) {
	assert.Nil(t, Rate(String("five percent")))
	assert.Nil(t, Rate(Nil()))
}

func TestDate(t *testing.T) {
	got := Date(String("2024-03-15"))
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got.(time.Time))

	// Native time values keep only the date component.
	got = Date(Time(time.Date(2023, 7, 4, 13, 45, 12, 0, time.UTC)))
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC), got.(time.Time))
}

func TestDate_RejectsNonISO(t *testing.T) {
	assert.Nil(t, Date(String("03/15/2024")))
	assert.Nil(t, Date(String("March 15, 2024")))
	assert.Nil(t, Date(Number(45000)))
}

func TestInteger_TruncatesThroughFloat(t *testing.T) {
	require.NotNil(t, Integer(String("240.0")))
	assert.Equal(t, 240, Integer(String("240.0")).(int))
	assert.Equal(t, 359, Integer(String("359.7")).(int))
	assert.Equal(t, 120, Integer(Number(120)).(int))
	assert.Nil(t, Integer(String("term")))
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, 0.85, Confidence(Number(0.85)))
	assert.Equal(t, 0.85, Confidence(String("0.85")))
	assert.Equal(t, 1.0, Confidence(Number(3)))
	assert.Equal(t, 0.0, Confidence(Number(-0.5)))
	// Missing or unparsable defaults to zero, never to certainty.
	assert.Equal(t, 0.0, Confidence(Nil()))
	assert.Equal(t, 0.0, Confidence(String("high")))
}

func TestText(t *testing.T) {
	assert.Equal(t, "Smith, John", Text(String("  Smith, John  ")))
	assert.Nil(t, Text(String("   ")))
	assert.Equal(t, "12345", Text(Number(12345)))
}

func TestCoerce_NilShortCircuit(t *testing.T) {
	for _, ft := range []schema.FieldType{
		schema.TypeText, schema.TypeCurrency, schema.TypeRate,
		schema.TypeDate, schema.TypeInteger,
	} {
		field := schema.Field{Name: "f", Type: ft}
		assert.Nil(t, Coerce(field, Nil()), "type %s", ft)
		assert.Nil(t, Coerce(field, String("  ")), "type %s", ft)
	}

	// Confidence is the exception: absence reads as 0.0, not nil.
	conf := schema.Field{Name: "confidence", Type: schema.TypeConfidence}
	assert.Equal(t, 0.0, Coerce(conf, Nil()))
}

func TestFromAny(t *testing.T) {
	assert.True(t, FromAny(nil).IsNil())
	assert.Equal(t, KindString, FromAny("x").Kind())
	assert.Equal(t, KindNumber, FromAny(3.14).Kind())
	assert.Equal(t, KindNumber, FromAny(7).Kind())
	assert.Equal(t, KindString, FromAny(true).Kind())
	// Objects and arrays have no scalar representation.
	assert.True(t, FromAny(map[string]any{"a": 1}).IsNil())
	assert.True(t, FromAny([]any{1, 2}).IsNil())
}
