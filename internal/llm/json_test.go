package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{
			name: "bare object",
			raw:  `{"score": 85}`,
			want: `{"score": 85}`,
			ok:   true,
		},
		{
			name: "surrounding prose",
			raw:  "Here is the result:\n{\"score\": 42}\nHope that helps!",
			want: `{"score": 42}`,
			ok:   true,
		},
		{
			name: "code fence",
			raw:  "```json\n{\"summary\": \"good\"}\n```",
			want: `{"summary": "good"}`,
			ok:   true,
		},
		{
			name: "nested object",
			raw:  `text {"a": {"b": 1}, "c": [2]} trailing`,
			want: `{"a": {"b": 1}, "c": [2]}`,
			ok:   true,
		},
		{
			name: "brace inside string",
			raw:  `{"msg": "use {curly} braces"}`,
			want: `{"msg": "use {curly} braces"}`,
			ok:   true,
		},
		{
			name: "no object",
			raw:  "sorry, I cannot help with that",
			ok:   false,
		},
		{
			name: "unbalanced",
			raw:  `{"score": 42`,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
