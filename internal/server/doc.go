// Package server は、ローカル開発用の静的ファイル配信サーバーを実装します。
//
// このパッケージは、HTTPサーバーの起動、静的ファイルの解決と配信、
// ディレクトリ一覧ページの生成を担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - リクエストパスの配信ルート配下への解決
//   - 静的ファイルとディレクトリ一覧の配信
//   - CORS・セキュリティヘッダの全レスポンスへの付与
//   - OPTIONSプリフライトリクエストへの応答
//
// 仕様:
//   - ルーティングとミドルウェアはgin-gonic/ginを使用
//   - 固定ヘッダは単一のミドルウェアで全レスポンスに付与
//   - リクエスト単位のエラーはレスポンスに閉じ、サーバーを停止させない
//   - グレースフルシャットダウンに対応
package server
