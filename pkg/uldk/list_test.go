package uldk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUnitList(t *testing.T) {
	raw := "header\nDOLNOŚLĄSKIE|02\nKUJAWSKO-POMORSKIE|04\n"

	opts := ParseUnitList(raw)

	assert.Equal(t, []Option{
		{Label: "DOLNOŚLĄSKIE", Value: "02"},
		{Label: "KUJAWSKO-POMORSKIE", Value: "04"},
	}, opts)
}

func TestParseUnitList_HeaderOnly(t *testing.T) {
	assert.Empty(t, ParseUnitList("0\n"))
	assert.Empty(t, ParseUnitList("0"))
}

func TestParseUnitList_Empty(t *testing.T) {
	assert.Empty(t, ParseUnitList(""))
}

func TestParseUnitList_SkipsBlankAndMalformedLines(t *testing.T) {
	raw := "header\n\nA|1\nno pipe here\n\nB|2\n\n"

	opts := ParseUnitList(raw)

	assert.Equal(t, []Option{
		{Label: "A", Value: "1"},
		{Label: "B", Value: "2"},
	}, opts)
}

func TestParseUnitList_PreservesServerOrder(t *testing.T) {
	raw := "header\nZ|9\nA|1\nM|5\n"

	opts := ParseUnitList(raw)

	assert.Equal(t, []string{"Z", "A", "M"}, []string{opts[0].Label, opts[1].Label, opts[2].Label})
}

func TestParseUnitList_ValueKeepsExtraPipes(t *testing.T) {
	// Only the first pipe separates label from value.
	opts := ParseUnitList("header\nA|1|extra\n")

	assert.Equal(t, []Option{{Label: "A", Value: "1|extra"}}, opts)
}
