package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole_PrintNumber(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	con := &Console{Writer: output}

	err := con.PrintNumber(8)
	assert.NoError(err)
	assert.Equal("8\n", output.String())

	output.Reset()
	err = con.PrintNumber(255)
	assert.NoError(err)
	assert.Equal("255\n", output.String())
}

func TestConsole_PrintChar(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	con := &Console{Writer: output}

	for _, value := range []uint8{'H', 'i', '\n'} {
		err := con.PrintChar(value)
		assert.NoError(err)
	}
	assert.Equal("Hi\n", output.String())
}

type failWriter struct{}

var errWrite = errors.New("write failed")

func (failWriter) Write(p []byte) (n int, err error) {
	return 0, errWrite
}

func TestConsole_WriterError(t *testing.T) {
	assert := assert.New(t)

	con := &Console{Writer: failWriter{}}

	assert.ErrorIs(con.PrintNumber(1), errWrite)
	assert.ErrorIs(con.PrintChar('a'), errWrite)
}
