package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// MarshalDebugJSON 将排版结果编码为缩进 JSON。
func MarshalDebugJSON(res *Result) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("layout: result is nil")
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteDebugJSON 将排版结果输出为 JSON，便于调试或比对 golden 输出。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := MarshalDebugJSON(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
