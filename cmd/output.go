package cmd

import "fmt"

type keyValue struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

func (kv keyValue) String() string {
	return kv.Key + "=" + kv.Value
}

func (kv keyValue) Pretty() string {
	return fmt.Sprintf("%-40s %s", kv.Key, kv.Value)
}

func (kv keyValue) TableHeaders() []string {
	return []string{"Key", "Value"}
}

func (kv keyValue) TableRow() []string {
	return []string{kv.Key, kv.Value}
}
