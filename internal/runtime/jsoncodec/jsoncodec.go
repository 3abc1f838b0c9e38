package jsoncodec

import "github.com/bytedance/sonic"

var defaultConfig = sonic.ConfigStd

func Marshal(v any) ([]byte, error) {
	return defaultConfig.Marshal(v)
}

func MarshalToString(v any) (string, error) {
	return defaultConfig.MarshalToString(v)
}

func Unmarshal(data []byte, v any) error {
	return defaultConfig.Unmarshal(data, v)
}

func UnmarshalFromString(data string, v any) error {
	return defaultConfig.UnmarshalFromString(data, v)
}
