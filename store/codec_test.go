package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFieldPlain(t *testing.T) {
	// 普通文本原样返回
	assert.Equal(t, "hello", EncodeField("hello"))
	assert.Equal(t, "", EncodeField(""))
}

func TestEncodeFieldEscaping(t *testing.T) {
	assert.Equal(t, "\"a,b\"", EncodeField("a,b"))
	assert.Equal(t, "\"say \"\"hi\"\"\"", EncodeField("say \"hi\""))
	assert.Equal(t, "\"line1\nline2\"", EncodeField("line1\nline2"))
}

func TestDecodeRowsEmpty(t *testing.T) {
	// 空文本解码为零行
	assert.Empty(t, DecodeRows(""))
	assert.Empty(t, DecodeRows("\n\n"))
}

func TestDecodeRowsQuotedComma(t *testing.T) {
	rows := DecodeRows("name,city\n\"A, B University\",Metropolis\n")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"name", "city"}, rows[0])
	assert.Equal(t, []string{"A, B University", "Metropolis"}, rows[1])
}

func TestDecodeRowsEscapedQuote(t *testing.T) {
	rows := DecodeRows("\"say \"\"hi\"\"\",x\n")
	require.Len(t, rows, 1)
	assert.Equal(t, "say \"hi\"", rows[0][0])
	assert.Equal(t, "x", rows[0][1])
}

func TestDecodeRowsQuotedNewline(t *testing.T) {
	// 引号内的换行属于字段内容，不切行
	rows := DecodeRows("\"line1\nline2\",x\ny,z\n")
	require.Len(t, rows, 2)
	assert.Equal(t, "line1\nline2", rows[0][0])
	assert.Equal(t, []string{"y", "z"}, rows[1])
}

func TestDecodeRowsCRLF(t *testing.T) {
	rows := DecodeRows("a,b\r\nc,d\r\n")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"c", "d"}, rows[1])
}

func TestDecodeRowsNoTrailingNewline(t *testing.T) {
	rows := DecodeRows("a,b\nc,d")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"c", "d"}, rows[1])
}

func TestRoundTrip(t *testing.T) {
	// 含逗号、引号、内嵌换行的记录编码再解码后应与原值一致
	fields := []string{
		"plain",
		"has,comma",
		"has \"quotes\"",
		"multi\nline\nvalue",
		"",
		"[\"CS\",\"Math, Applied\"]",
	}

	rows := DecodeRows(EncodeRow(fields) + "\n")
	require.Len(t, rows, 1)
	assert.Equal(t, fields, rows[0])
}
