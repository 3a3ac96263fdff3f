package api

import (
	"encoding/json"

	"github.com/mailru/easyjson"
)

// 类型实现了 easyjson 接口时走生成的编解码，否则回退到标准库
func jsonEncoder(v interface{}) ([]byte, error) {
	if m, ok := v.(easyjson.Marshaler); ok {
		return easyjson.Marshal(m)
	}
	return json.Marshal(v)
}

func jsonDecoder(data []byte, v interface{}) error {
	if u, ok := v.(easyjson.Unmarshaler); ok {
		return easyjson.Unmarshal(data, u)
	}
	return json.Unmarshal(data, v)
}

// DecodeBody 解析请求体，失败时返回 ErrInvalidRequest
func DecodeBody(body []byte, v easyjson.Unmarshaler) error {
	if len(body) == 0 {
		return InvalidRequest("empty request body")
	}
	if err := easyjson.Unmarshal(body, v); err != nil {
		return InvalidRequest("malformed json: %v", err)
	}
	return nil
}
