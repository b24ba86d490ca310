package proto

import "encoding/json"

// JSONCodec кодирует сообщения gRPC в JSON
type JSONCodec struct{}

// Marshal кодирует сообщение
func (JSONCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal декодирует сообщение
func (JSONCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// Name возвращает имя кодека для content-subtype
func (JSONCodec) Name() string {
	return "json"
}
