package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"banken/internal/config"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
)

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	engine     *gin.Engine
	httpServer *http.Server
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	return &Server{
		config: cfg,
		engine: engine,
		httpServer: &http.Server{
			Addr:         cfg.ServerAddress(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// setupRoutes はHTTPルートを設定する
func (s *Server) setupRoutes() {
	// 固定ヘッダはルート登録より先にミドルウェアとして挟む
	// これによりエラー応答を含む全レスポンスが必ずここを通る
	s.engine.Use(fixedHeaders())

	// GET/HEAD/OPTIONS以外のメソッドには405を返す
	s.engine.HandleMethodNotAllowed = true

	// 全パスを静的ファイルとして解決する
	s.engine.GET("/*filepath", s.handleStatic)
	s.engine.HEAD("/*filepath", s.handleStatic)
	s.engine.OPTIONS("/*filepath", s.handlePreflight)
}

// Start はサーバーを起動する
// コンテキストのキャンセルか割り込みシグナルでグレースフルに停止する
func (s *Server) Start(ctx context.Context) error {
	// ルートを設定
	s.setupRoutes()

	// バインド失敗（ポート使用中など）を同期的に返すため、先にリッスンする
	listener, err := net.Listen("tcp", s.config.ServerAddress())
	if err != nil {
		return fmt.Errorf("リッスンに失敗: %w", err)
	}

	s.printBanner()

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownCh <- fmt.Errorf("サーバーの実行に失敗: %w", err)
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	case err := <-shutdownCh:
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	log.Println("サーバーをシャットダウンしています...")

	// 5秒のタイムアウトを設定
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	log.Println("サーバーが正常にシャットダウンされました")
	return nil
}

// printBanner は起動バナーを表示する
func (s *Server) printBanner() {
	color.Cyan("🐕 banken 開発サーバーを起動します...")
	fmt.Printf("📡 サーバーURL: http://localhost:%d\n", s.config.Server.Port)
	fmt.Printf("📁 配信ディレクトリ: %s\n", s.config.Static.Root)
	fmt.Printf("🌐 ブラウザで http://localhost:%d を開いてください\n", s.config.Server.Port)
	fmt.Println("⏹  Ctrl+C で停止します")
	fmt.Println(strings.Repeat("-", 50))
}
