package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputKeys(t *testing.T) {
	t.Run("Should map the input prefix to the output prefix", func(t *testing.T) {
		csvKey, rscKey := OutputKeys("input/hosts.csv", "input/", "output/")
		assert.Equal(t, "output/hosts.csv", csvKey)
		assert.Equal(t, "output/hosts.rsc", rscKey)
	})

	t.Run("Should replace spreadsheet extensions", func(t *testing.T) {
		csvKey, rscKey := OutputKeys("input/site-a/Hosts.XLSX", "input/", "output/")
		assert.Equal(t, "output/site-a/Hosts.csv", csvKey)
		assert.Equal(t, "output/site-a/Hosts.rsc", rscKey)
	})

	t.Run("Should only strip the last extension", func(t *testing.T) {
		csvKey, _ := OutputKeys("input/hosts.v2.csv", "input/", "generated/")
		assert.Equal(t, "generated/hosts.v2.csv", csvKey)
	})

	t.Run("Should support an empty input prefix", func(t *testing.T) {
		_, rscKey := OutputKeys("hosts.csv", "", "output/")
		assert.Equal(t, "output/hosts.rsc", rscKey)
	})
}

func TestDecodeKey(t *testing.T) {
	t.Run("Should decode plus signs and percent escapes", func(t *testing.T) {
		key, ok := decodeKey("input/my+hosts%28v2%29.csv")
		assert.True(t, ok)
		assert.Equal(t, "input/my hosts(v2).csv", key)
	})

	t.Run("Should keep a trailing percent sign", func(t *testing.T) {
		key, ok := decodeKey("input/100%.csv")
		assert.False(t, ok)
		assert.Equal(t, "input/100%.csv", key)
	})

	t.Run("Should decode what it can around a malformed escape", func(t *testing.T) {
		key, ok := decodeKey("input/a+b%zz%20c.csv")
		assert.False(t, ok)
		assert.Equal(t, "input/a b%zz c.csv", key)
	})
}
