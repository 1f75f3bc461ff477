package officials

// DefaultRoster returns the starter officials roster. It doubles as the
// static source for sync runs until the upstream registry exposes an API.
func DefaultRoster() []Official {
	return []Official{
		{Name: "李家超", Position: "行政长官", Department: "行政会议", Level: 1, IsActive: true},
		{Name: "陈国基", Position: "政务司司长", Department: "行政会议", Level: 2, IsActive: true},
		{Name: "陈茂波", Position: "财政司司长", Department: "行政会议", Level: 2, IsActive: true},
		{Name: "邓炳强", Position: "保安局局长", Department: "行政会议", Level: 3, IsActive: true},
		{Name: "杨润雄", Position: "教育局局长", Department: "行政会议", Level: 3, IsActive: true},
		{Name: "梁君彦", Position: "立法会主席", Department: "立法会", Level: 2, IsActive: true},
		{Name: "李慧琼", Position: "议员（新界西选区）", Department: "立法会", Level: 4, IsActive: true},
		{Name: "陈克勤", Position: "议员（新界东选区）", Department: "立法会", Level: 4, IsActive: true},
		{Name: "马逢国", Position: "议员（体育、演艺、文化及出版界）", Department: "立法会", Level: 4, IsActive: true},
		{Name: "甘乃威", Position: "中西区区议会主席", Department: "区议会", Level: 5, IsActive: true},
		{Name: "赵家贤", Position: "东区区议会主席", Department: "区议会", Level: 5, IsActive: false},
	}
}
