package main

import (
	"context"
	"errors"
	"os"
	"syscall"

	"banken/internal/config"
	"banken/internal/server"

	"github.com/fatih/color"
)

func main() {
	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		color.Red("❌ 設定の読み込みに失敗しました: %v", err)
		os.Exit(1)
	}

	// サーバーを作成
	srv := server.New(cfg)

	// コンテキストを作成
	ctx := context.Background()

	// サーバーを起動（割り込みシグナルで正常終了する）
	if err := srv.Start(ctx); err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			color.Red("❌ ポート %d は既に使用されています", cfg.Server.Port)
			color.Yellow("💡 別のポートを使うか、既存のサーバーを停止してください")
		} else {
			color.Red("❌ サーバーエラー: %v", err)
		}
		os.Exit(1)
	}

	color.Yellow("🛑 サーバーを停止しました")
}
