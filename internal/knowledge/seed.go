package knowledge

import "time"

// DefaultSeeds returns the starter knowledge items loaded at boot.
func DefaultSeeds() []Item {
	return []Item{
		{
			ID:        "1",
			Title:     "敏感词汇处理规范",
			Content:   "在处理用户咨询时，需要特别注意以下敏感词汇的使用和回应方式...",
			Type:      TypeSensitive,
			Keywords:  []string{"敏感词", "政治", "规范"},
			Category:  "内容审核",
			Severity:  SeverityHigh,
			IsActive:  true,
			CreatedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "2",
			Title:     "常见错误问题汇总",
			Content:   "用户经常询问的错误信息包括：1. 政策理解偏差 2. 流程操作错误...",
			Type:      TypeCommonError,
			Keywords:  []string{"错误", "政策", "流程"},
			Category:  "问题解答",
			Severity:  SeverityMedium,
			IsActive:  true,
			CreatedAt: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        "3",
			Title:     "政策解读指南",
			Content:   "针对新出台的政策，需要按照以下步骤进行解读和回应...",
			Type:      TypeGuideline,
			Keywords:  []string{"政策", "解读", "指南"},
			Category:  "政策解读",
			Severity:  SeverityLow,
			IsActive:  true,
			CreatedAt: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		},
	}
}
