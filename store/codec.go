package store

import "strings"

// 分隔文本编解码器。一条记录对应一行逗号分隔的字段，
// 字段内含逗号、引号或换行时整体加引号，内部引号写成两个引号。

// EncodeField 编码单个字段，必要时加引号转义
func EncodeField(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return "\"" + strings.ReplaceAll(value, "\"", "\"\"") + "\""
	}
	return value
}

// EncodeRow 编码一行记录
func EncodeRow(fields []string) string {
	encoded := make([]string, len(fields))
	for i, f := range fields {
		encoded[i] = EncodeField(f)
	}
	return strings.Join(encoded, ",")
}

// DecodeRows 逐字符扫描整段文本并解码为行。
// 引号内的逗号和换行属于字段内容，引号内的两个连续引号解码为一个引号。
// 空文本解码为零行。
func DecodeRows(text string) [][]string {
	if text == "" {
		return nil
	}

	var rows [][]string
	var row []string
	var field strings.Builder
	inQuotes := false

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				// 引号内的连续两个引号是转义的字面引号
				field.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			row = append(row, field.String())
			field.Reset()
		case c == '\r' && !inQuotes:
			// \r\n 行尾的 \r 丢弃
		case c == '\n' && !inQuotes:
			row = append(row, field.String())
			field.Reset()
			if !isBlankRow(row) {
				rows = append(rows, row)
			}
			row = nil
		default:
			field.WriteRune(c)
		}
	}

	// 最后一行可能没有换行结尾
	if field.Len() > 0 || len(row) > 0 {
		row = append(row, field.String())
		if !isBlankRow(row) {
			rows = append(rows, row)
		}
	}

	return rows
}

// isBlankRow 判断是否为空行解码出的单个空字段
func isBlankRow(row []string) bool {
	return len(row) == 1 && row[0] == ""
}
