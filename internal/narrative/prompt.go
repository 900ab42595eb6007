package narrative

import "strings"

const promptTemplate = `你是一位台股技術分析師。以下是自選股的技術指標表 (RSI、MACD 柱狀體、KD、量比、趨勢與訊號):

{{TABLE}}

請根據表格給出簡短的盤勢解讀，只回傳 JSON，格式如下:
{"summary": "整體看法 (100 字內)", "picks": [{"code": "代號", "action": "買進/觀望/減碼", "reason": "理由"}], "risks": ["風險 1"]}`

// BuildPrompt embeds the indicator table into the analysis prompt.
func BuildPrompt(table string) string {
	return strings.Replace(promptTemplate, "{{TABLE}}", strings.TrimSpace(table), 1)
}
