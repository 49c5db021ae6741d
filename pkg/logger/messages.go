package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Rendering %s...":                 "%s をレンダリング中...",
		"Output saved to %s":              "出力を %s に保存しました",
		"Pipeline completed successfully": "パイプラインが正常に完了しました",
		"Starting pipeline":               "パイプラインを開始します",
		"Interrupted, shutting down...":   "中断されました。シャットダウン中...",

		// Resource pool (C6)
		"Launching browser":                "ブラウザを起動中",
		"Browser pool saturated, waiting":  "ブラウザプールが飽和しています。待機中",
		"Page pool saturated, waiting":     "ページプールが飽和しています。待機中",
		"Browser closed":                   "ブラウザを閉じました",
		"Deferred browser release for %s":  "%s のブラウザ解放を延期しました",

		// Page driver (C4)
		"Navigating to %s":              "%s へ移動中",
		"Injecting capture context":     "キャプチャコンテキストを注入中",
		"Captured %d frames":            "%d フレームをキャプチャしました",
		"Capture completed in %d ms":    "キャプチャが %d ms で完了しました",
		"Page became unavailabled: %s":  "ページが利用不能になりました: %s",
		"Page error: %s":                "ページエラー: %s",

		// Preprocessor (C7)
		"Downloading %s":               "%s をダウンロード中",
		"Transcoding %s":               "%s をトランスコード中",
		"Preprocess cache hit for %s":  "%s のプリプロセスキャッシュを使用",

		// Frame encoder (C8)
		"Encoding frames with %s":      "%s でフレームをエンコード中",
		"Encoded %d frames":            "%d フレームをエンコードしました",
		"Encoding completed: %s":       "エンコード完了: %s",

		// Audio mixer (C9)
		"Mixing %d audio tracks":       "%d 個の音声トラックを合成中",
		"Mix completed: %s":            "音声合成完了: %s",

		// Chunk synthesizer (C10)
		"Synthesizing %d chunks":       "%d 個のチャンクを合成中",
		"Splicing chunk %d/%d":         "チャンク %d/%d をつなぎ合わせ中",

		// Warnings
		"Frame capture timeout, page marked unavailabled": "フレームキャプチャがタイムアウトしました。ページを利用不能としました",
		"Resource fetch failed, retrying (%d/%d)":         "リソース取得に失敗しました。再試行します (%d/%d)",

		// Errors
		"Failed to launch browser: %s":   "ブラウザの起動に失敗しました: %s",
		"Failed to navigate: %s":         "ページ移動に失敗しました: %s",
		"Failed to preprocess media: %s": "メディアの前処理に失敗しました: %s",
		"Failed to encode video: %s":     "動画のエンコードに失敗しました: %s",
		"Failed to mix audio: %s":        "音声の合成に失敗しました: %s",
		"Failed to write output: %s":     "出力の書き込みに失敗しました: %s",
	})
}
