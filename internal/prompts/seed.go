package prompts

import "time"

// DefaultSeeds returns the starter prompt templates loaded at boot.
func DefaultSeeds() []Prompt {
	return []Prompt{
		{
			ID:      "1",
			Title:   "客服回复模板",
			Content: "您好，感谢您的咨询。关于{{问题类型}}，我们的建议是{{解决方案}}。",
			Variables: []Variable{
				{Name: "问题类型", Type: "string", Required: true},
				{Name: "解决方案", Type: "string", Required: true},
			},
			Category:  "客服",
			Tags:      []string{"客服", "回复"},
			Version:   1,
			Status:    StatusPublished,
			AuthorID:  "1",
			CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:      "2",
			Title:   "政策解读模板",
			Content: "根据{{政策名称}}的相关规定，{{具体条款}}。详细信息请参考{{参考链接}}。",
			Variables: []Variable{
				{Name: "政策名称", Type: "string", Required: true},
				{Name: "具体条款", Type: "string", Required: true},
				{Name: "参考链接", Type: "string", Required: false},
			},
			Category:  "政策",
			Tags:      []string{"政策", "解读"},
			Version:   2,
			Status:    StatusDraft,
			AuthorID:  "2",
			CreatedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
		},
	}
}
