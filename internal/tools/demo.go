package tools

import (
	"context"
	"encoding/json"
	"strings"

	"pdfagent/internal/llm"
)

// DemoContextName is the name of the demo context tool.
const DemoContextName = "get_demo_context"

var demoPoints = []string{
	"1. 函数调用是大模型与外部工具交互的重要方式",
	"2. 工具调用可以让模型获取实时信息或执行特定任务",
	"3. 正确的工具定义和参数设置是成功调用的关键",
}

// DemoContextTool returns a fixed set of demo bullet points.
type DemoContextTool struct{}

func (DemoContextTool) Definition() llm.ToolDefinition {
	return llm.NewFunctionTool(
		DemoContextName,
		"获取演示课件的要点",
		json.RawMessage(`{"type":"object","properties":{},"required":[]}`),
	)
}

func (DemoContextTool) Call(_ context.Context, _ json.RawMessage) (string, error) {
	return strings.Join(demoPoints, "\n"), nil
}
