// Package linecount 统计文件中以 '\n' 分隔的行数。
// 计数直接作用于字节流，不做任何文本解码，因此二进制内容同样可以安全计数。
package linecount

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gitloc/internal/model"
)

// bufferSize 是单次读取的缓冲区大小。
const bufferSize = 64 * 1024

// CountReader 以流式方式统计 reader 中的行数。
// 行数 = '\n' 的个数；若内容非空且最后一个字节不是 '\n'，再额外 +1。
// 只有 '\r' 的内容不会被拆行，整体计为一行。
func CountReader(reader io.Reader) (int64, error) {
	buffer := make([]byte, bufferSize)

	var (
		count    int64
		lastByte byte
		seen     bool
	)

	for {
		n, err := reader.Read(buffer)
		if n > 0 {
			chunk := buffer[:n]
			count += int64(bytes.Count(chunk, []byte{'\n'}))
			lastByte = chunk[n-1]
			seen = true
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}
	}

	if seen && lastByte != '\n' {
		count++
	}
	return count, nil
}

// CountFile 打开并统计单个文件。
// 打开或读取失败时返回 *model.CountError，调用方可以用 errors.Is 判断底层原因。
func CountFile(path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, &model.CountError{Path: path, Err: err}
	}

	lines, readErr := CountReader(file)
	closeErr := file.Close()

	if readErr != nil {
		return 0, &model.CountError{Path: path, Err: readErr}
	}
	if closeErr != nil {
		return 0, &model.CountError{Path: path, Err: closeErr}
	}
	return lines, nil
}
