package extract

import "testing"

func TestAuthor(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "nationality tag with marker",
			text: "封面\n[美] 马克·吐温 著\n其他",
			want: "马克·吐温",
		},
		{
			name: "romanized name kept",
			text: "[法] 圣埃克苏佩里 (Saint-Exupéry) 著",
			want: "圣埃克苏佩里 (Saint-Exupéry)",
		},
		{
			name: "author prefix with colon",
			text: "作者：余华",
			want: "余华",
		},
		{
			name: "compiled-by marker",
			text: "谭浩强 编著",
			want: "谭浩强",
		},
		{
			name: "first matching line wins",
			text: "作者：张三\n李四 著",
			want: "张三",
		},
		{
			name: "overlong line rejected",
			text: "著这是一条特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别特别长的含著字的行",
			want: "",
		},
		{
			name: "nothing matches",
			text: "深度学习\n人民邮电出版社",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Author(tt.text); got != tt.want {
				t.Errorf("Author(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestPublisher(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "press name inside line",
			text: "北京 人民邮电出版社 2019",
			want: "人民邮电出版社",
		},
		{
			name: "whole line is press name",
			text: "清华大学出版社",
			want: "清华大学出版社",
		},
		{
			name: "press preferred over group",
			text: "中信出版集团\n机械工业出版社",
			want: "机械工业出版社",
		},
		{
			name: "publishing group fallback",
			text: "中信出版集团",
			want: "中信出版集团",
		},
		{
			name: "author line not mistaken for publisher",
			text: "出版社编辑 王五 著",
			want: "",
		},
		{
			name: "no publisher",
			text: "深度学习\n定价：39.80元",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Publisher(tt.text); got != tt.want {
				t.Errorf("Publisher(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestISBN(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "hyphenated with prefix",
			text: "ISBN 978-7-111-64198-1",
			want: "ISBN 9787111641981",
		},
		{
			name: "bare digits",
			text: "条码 9787115461476 上架建议",
			want: "ISBN 9787115461476",
		},
		{
			name: "truncated match rejected",
			text: "ISBN 97-8",
			want: "",
		},
		{
			name: "isbn-979 prefix",
			text: "ISBN 979-8-6024-0545-7",
			want: "ISBN 9798602405457",
		},
		{
			name: "no isbn",
			text: "定价：39.80元",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ISBN(tt.text); got != tt.want {
				t.Errorf("ISBN(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "labeled price",
			text: "定价：39.80元",
			want: "¥39.80",
		},
		{
			name: "price keyword",
			text: "价格: 25元",
			want: "¥25",
		},
		{
			name: "missing unit rejected",
			text: "价格 ¥20",
			want: "",
		},
		{
			name: "no price",
			text: "深度学习",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Price(tt.text); got != tt.want {
				t.Errorf("Price(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
