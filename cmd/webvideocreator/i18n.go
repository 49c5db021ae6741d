// Package main provides localization for the webvideocreator CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		"Render a web page into a deterministic offline video.":           "Webページを決定論的なオフライン動画にレンダリング",
		"Remove cached browser/preprocessor/synthesizer tmp state.":       "ブラウザ/前処理/合成のキャッシュを削除",
		"Show version information.":                                       "バージョン情報を表示",
		"Render web pages into deterministic, offline video files.":      "Webページを決定論的なオフライン動画ファイルにレンダリングします。",

		"URL of the page to render (mutually exclusive with --html).": "レンダリングするページのURL（--htmlとは併用不可）",
		"Output video file path.":                                     "出力動画ファイルパス",
		"Inline HTML document to render instead of a URL.":            "URLの代わりにレンダリングするインラインHTML",
		"Container format.":                                           "コンテナ形式",
		"Output video width in pixels (must be even).":                "出力動画の幅（偶数である必要があります）",
		"Output video height in pixels (must be even).":               "出力動画の高さ（偶数である必要があります）",
		"Frames per second.":                                          "フレームレート",
		"Capture duration in milliseconds.":                           "キャプチャ時間（ミリ秒）",
		"Virtual time at which frame capture begins (pre-roll is rendered but not emitted).": "フレームキャプチャを開始する仮想時刻（それ以前もレンダリングされるが出力されない）",
		"Device scale factor.": "デバイススケールファクター",

		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"Rendering %s...":                "%s をレンダリング中...",
		"Output saved to %s":             "出力を %s に保存しました",
	})
}
