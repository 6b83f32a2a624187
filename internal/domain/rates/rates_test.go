package rates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxestay/internal/domain/rates"
	"luxestay/internal/domain/shared/money"
)

func TestConvertRoundsToMinorUnits(t *testing.T) {
	table := rates.Default()

	eur, err := table.Convert(money.Must(100000, "USD"), "EUR")
	require.NoError(t, err)
	assert.Equal(t, money.Must(93000, "EUR"), eur)

	jpy, err := table.Convert(money.Must(100000, "USD"), "jpy")
	require.NoError(t, err)
	assert.Equal(t, money.Must(15038000, "JPY"), jpy)
}

func TestConvertBackFromNonBase(t *testing.T) {
	table := rates.Default()

	usd, err := table.Convert(money.Must(93000, "EUR"), "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), usd.Amount)
}

func TestConvertUnknownCurrency(t *testing.T) {
	table := rates.Default()

	_, err := table.Convert(money.Must(100, "USD"), "XXX")
	assert.ErrorIs(t, err, rates.ErrUnknownCurrency)

	_, err = table.Convert(money.Must(100, "XXX"), "USD")
	assert.ErrorIs(t, err, rates.ErrUnknownCurrency)
}

func TestCurrenciesListsAllCodes(t *testing.T) {
	table := rates.Default()
	assert.ElementsMatch(t,
		[]string{"USD", "EUR", "GBP", "JPY", "INR", "CAD", "AUD"},
		table.Currencies())
}
