// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"rivaas.dev/apispec/router"
)

var methodColors = map[string]string{
	"GET":     "10",
	"POST":    "12",
	"PUT":     "11",
	"DELETE":  "9",
	"PATCH":   "13",
	"HEAD":    "14",
	"OPTIONS": "7",
}

// colorWriter downsamples ANSI colors to what w supports. Without color,
// all escape sequences are stripped.
func colorWriter(w io.Writer, color bool) *colorprofile.Writer {
	cpw := colorprofile.NewWriter(w, os.Environ())
	if !color {
		cpw.Profile = colorprofile.NoTTY
	}

	return cpw
}

// renderRoutes writes routes as a table.
func renderRoutes(w io.Writer, routes []router.RouteInfo) {
	if len(routes) == 0 {
		_, _ = fmt.Fprintln(w, "No routes registered")
		return
	}

	rows := make([][]string, 0, len(routes))
	for _, rt := range routes {
		rows = append(rows, []string{rt.Name, methodsCell(rt), rt.Pattern, fmt.Sprint(rt.Views)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			style := lipgloss.NewStyle().Align(lipgloss.Left).Padding(0, 1)
			if row == table.HeaderRow {
				style = style.Bold(true).Foreground(lipgloss.Color("230"))
			}

			return style
		}).
		Headers("Route", "Methods", "Pattern", "Views").
		Rows(rows...)

	_, _ = fmt.Fprintln(w, t.Render())
}

func methodsCell(rt router.RouteInfo) string {
	methods := rt.Methods
	if rt.AnyMethod {
		methods = append([]string{"*"}, methods...)
	}
	if len(methods) == 0 {
		return "-"
	}

	styled := make([]string, len(methods))
	for i, m := range methods {
		styled[i] = m
		if c, ok := methodColors[m]; ok {
			styled[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Bold(true).Render(m)
		}
	}

	return strings.Join(styled, " ")
}
