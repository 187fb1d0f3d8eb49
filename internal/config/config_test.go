package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestConfigLoad は設定の読み込みをテストする
func TestConfigLoad(t *testing.T) {
	// 設定を読み込む
	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg == nil {
		t.Fatal("設定がnilです")
	}

	// サーバー設定の検証（ポートと配信ディレクトリは固定）
	if cfg.Server.Host == "" {
		t.Error("サーバーホストが設定されていません")
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("予期しないポート番号: got %d, want %d", cfg.Server.Port, 8000)
	}
	if cfg.Server.ReadTimeout <= 0 {
		t.Error("読み込みタイムアウトが設定されていません")
	}
	if cfg.Server.WriteTimeout <= 0 {
		t.Error("書き込みタイムアウトが設定されていません")
	}

	// 配信ディレクトリの検証
	info, err := os.Stat(cfg.Static.Root)
	if err != nil {
		t.Fatalf("配信ディレクトリにアクセスできません: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("配信ディレクトリがディレクトリではありません: %s", cfg.Static.Root)
	}
}

// TestConfigValidation は設定の検証をテストする
func TestConfigValidation(t *testing.T) {
	validRoot := t.TempDir()

	notDir := filepath.Join(validRoot, "file.txt")
	if err := os.WriteFile(notDir, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name      string
		config    *Config
		expectErr bool
	}{
		{
			name: "正常な設定",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 8000},
				Static: StaticConfig{Root: validRoot},
			},
			expectErr: false,
		},
		{
			name: "無効なポート番号",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 99999},
				Static: StaticConfig{Root: validRoot},
			},
			expectErr: true,
		},
		{
			name: "ポート番号ゼロ",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 0},
				Static: StaticConfig{Root: validRoot},
			},
			expectErr: true,
		},
		{
			name: "存在しない配信ディレクトリ",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 8000},
				Static: StaticConfig{Root: filepath.Join(validRoot, "missing")},
			},
			expectErr: true,
		},
		{
			name: "配信ディレクトリがファイル",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 8000},
				Static: StaticConfig{Root: notDir},
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.expectErr && err == nil {
				t.Error("エラーが返りませんでした")
			}
			if !tc.expectErr && err != nil {
				t.Errorf("予期しないエラー: %v", err)
			}
		})
	}
}

// TestServerAddress はリッスンアドレスの組み立てをテストする
func TestServerAddress(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8000},
	}

	if got, want := cfg.ServerAddress(), "0.0.0.0:8000"; got != want {
		t.Errorf("予期しないアドレス: got %q, want %q", got, want)
	}
}
