package app

import "testing"

// --- テスト ---

// TestParseCommand はサブコマンド解析と既定値を検証する。
func TestParseCommand(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want Command
	}{
		{"引数なし", nil, CommandServe},
		{"serve", []string{"serve"}, CommandServe},
		{"worker", []string{"worker"}, CommandWorker},
		{"migrate", []string{"migrate"}, CommandMigrate},
		{"healthcheck", []string{"healthcheck"}, CommandHealthcheck},
		{"未知のコマンドはserve", []string{"banana"}, CommandServe},
		{"後続引数は無視", []string{"worker", "extra"}, CommandWorker},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ParseCommand(c.args); got != c.want {
				t.Errorf("ParseCommand(%v) = %q, want %q", c.args, got, c.want)
			}
		})
	}
}
