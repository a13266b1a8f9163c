package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteRangeEscapesApostrophes(t *testing.T) {
	assert.Equal(t, "'1_Opening'", quoteRange("1_Opening"))
	assert.Equal(t, "'1_L''Ouest'", quoteRange("1_L'Ouest"))
	assert.Equal(t, "'a''b''c'", quoteRange("a'b'c"))
}
