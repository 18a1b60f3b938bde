// Package model 定义工作流层输入输出模型
package model

// Turn 一轮会话
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
