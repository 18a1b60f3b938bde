package prompt

import (
	"embed"
	"fmt"
	"strings"
	"sync"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptArticleGenV1 PromptID = "article_gen_v1"
	PromptTriageV1     PromptID = "triage_v1"
	PromptAutopilotV1  PromptID = "autopilot_v1"
)

// Registry 系统指令注册表
// 用户侧内容由各工作流链自行拼装，模板仅承载固定的系统指令，
// 避免对包含花括号的用户输入做二次格式化。
type Registry struct {
	mu    sync.RWMutex
	cache map[PromptID]string
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[PromptID]string),
	}
}

// SystemText 返回指定链的系统指令文本
func (r *Registry) SystemText(id PromptID) (string, error) {
	if r == nil {
		return "", fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if text, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return text, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if text, ok := r.cache[id]; ok {
		return text, nil
	}

	path, err := resolveSystemFile(id)
	if err != nil {
		return "", err
	}
	text, err := readEmbeddedText(path)
	if err != nil {
		return "", err
	}
	r.cache[id] = text
	return text, nil
}

func resolveSystemFile(id PromptID) (string, error) {
	switch id {
	case PromptArticleGenV1:
		return "templates/article_gen_v1.system.txt", nil
	case PromptTriageV1:
		return "templates/triage_v1.system.txt", nil
	case PromptAutopilotV1:
		return "templates/autopilot_v1.system.txt", nil
	default:
		return "", fmt.Errorf("unknown prompt id: %s", id)
	}
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
