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

package bootstrap

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/common-nighthawk/go-figure"
	"golang.org/x/term"
)

// getColorWriter returns a colorprofile.Writer configured for the app's
// environment. In production mode, ANSI colors are stripped. In development,
// colors are automatically downsampled based on terminal capabilities.
func (a *App) getColorWriter(w io.Writer) *colorprofile.Writer {
	cpw := colorprofile.NewWriter(w, os.Environ())
	// In production, explicitly strip all ANSI sequences
	if a.config.environment == EnvironmentProduction {
		cpw.Profile = colorprofile.NoTTY
	}
	return cpw
}

// printStartupBanner prints the startup banner to stdout. It is called by
// [App.Start] once the listener is bound, so the banner shows the effective
// URL after any port probing.
func (a *App) printStartupBanner() {
	w := a.getColorWriter(os.Stdout)

	// ASCII art from the service name, strict mode disabled for safety
	myFigure := figure.NewFigure(a.config.serviceName, "", false)
	asciiLines := myFigure.Slicify()

	var gradientColors []string
	if a.config.environment == EnvironmentDevelopment {
		gradientColors = []string{"12", "14", "10", "11"} // Blue, Cyan, Green, Yellow
	} else {
		gradientColors = []string{"10", "11"} // Green, Yellow
	}

	var styledArt strings.Builder
	for _, line := range asciiLines {
		if strings.TrimSpace(line) == "" {
			_, _ = styledArt.WriteString("\n")
			continue
		}
		for i, char := range line {
			color := gradientColors[i%len(gradientColors)]
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(color)).
				Bold(true)
			_, _ = styledArt.WriteString(style.Render(string(char)))
		}
		_, _ = styledArt.WriteString("\n")
	}

	categoryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Width(14).
		PaddingLeft(2).
		Align(lipgloss.Left)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true)

	disabledStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	var output strings.Builder

	_, _ = output.WriteString(categoryStyle.Render("Service") + "\n")
	_, _ = output.WriteString(labelStyle.Render("Version:") + "  " + valueStyle.Foreground(lipgloss.Color("14")).Render(a.config.serviceVersion) + "\n")
	_, _ = output.WriteString(labelStyle.Render("Environment:") + "  " + valueStyle.Foreground(lipgloss.Color("11")).Render(a.config.environment) + "\n")
	_, _ = output.WriteString(labelStyle.Render("URL:") + "  " + valueStyle.Foreground(lipgloss.Color("10")).Render(a.URL()) + "\n")

	_, _ = output.WriteString("\n" + categoryStyle.Render("Observability") + "\n")
	var metricsLine string
	if a.metrics != nil {
		metricsAddr := a.metrics.ServerAddress()
		if strings.HasPrefix(metricsAddr, ":") {
			metricsAddr = "0.0.0.0" + metricsAddr
		}
		metricsPath := a.metrics.Path()
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		metricsLine = labelStyle.Render("Metrics:") + "  " +
			valueStyle.Foreground(lipgloss.Color("13")).Render("http://"+metricsAddr+metricsPath)
	} else {
		metricsLine = labelStyle.Render("Metrics:") + "  " + disabledStyle.Render("Disabled")
	}
	_, _ = output.WriteString(metricsLine + "\n")

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprint(w, styledArt.String())
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprint(w, output.String())

	// Routes table only in development mode
	if a.config.environment == EnvironmentDevelopment {
		if len(a.router.Routes()) > 0 {
			_, _ = fmt.Fprintln(w)
			a.renderRoutesTable(w, 80)
		}
	}

	_, _ = fmt.Fprintln(w)
}

// renderRoutesTable renders the routes table to the given writer.
// width specifies the table width (80 for banner, 120 for standalone).
func (a *App) renderRoutesTable(w io.Writer, width int) {
	routes := a.router.Routes()
	if len(routes) == 0 {
		return
	}

	methodStyles := map[string]lipgloss.Style{
		http.MethodGet:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true), // Green
		http.MethodPost:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true), // Blue
		http.MethodPut:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true), // Yellow
		http.MethodDelete:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),  // Red
		http.MethodPatch:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true), // Magenta
		http.MethodHead:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true), // Cyan
		http.MethodOptions: lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true),  // Gray
	}

	// Colors only in development; the Writer still checks the terminal
	useColors := a.config.environment == EnvironmentDevelopment

	rows := make([][]string, 0, len(routes))
	maxMethodWidth := len("Method")
	maxPathWidth := len("Path")
	maxHandlerWidth := len("Handler")

	for _, rt := range routes {
		method := rt.Method
		if useColors {
			if style, ok := methodStyles[method]; ok {
				method = style.Render(method)
			}
		}

		// Measure with unstyled values; ANSI sequences would skew widths
		maxMethodWidth = max(maxMethodWidth, len(rt.Method))
		maxPathWidth = max(maxPathWidth, len(rt.Path))
		maxHandlerWidth = max(maxHandlerWidth, len(rt.HandlerName))

		rows = append(rows, []string{method, rt.Path, rt.HandlerName})
	}

	// Borders (2) + separators (2) + per-column padding (6) + content
	minWidth := 2 + 2 + 6 + maxMethodWidth + maxPathWidth + maxHandlerWidth

	// Only check terminal size if writer is an *os.File (avoids race with tests)
	terminalWidth := width
	if file, ok := w.(*os.File); ok {
		if termWidth, _, err := getTerminalSize(file); err == nil && termWidth > 0 {
			terminalWidth = termWidth
		}
	}

	tableWidth := max(minWidth, width)
	if terminalWidth > 0 {
		tableWidth = min(tableWidth, terminalWidth)
	}
	tableWidth = max(60, tableWidth)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(func() lipgloss.Style {
			if useColors {
				return lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Gray border
			}
			return lipgloss.NewStyle()
		}()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			style := lipgloss.NewStyle().
				Align(lipgloss.Left).
				Padding(0, 1)
			if row == 0 && useColors {
				style = style.
					Bold(true).
					Foreground(lipgloss.Color("230")) // Light yellow/white
			}
			return style
		}).
		Headers("Method", "Path", "Handler").
		Rows(rows...).
		Width(tableWidth)

	_, _ = fmt.Fprintln(w, t.Render())
}

// getTerminalSize returns the terminal dimensions in character cells, or an
// error when no terminal is attached (pipes, redirects).
func getTerminalSize(file *os.File) (int, int, error) {
	if file == nil {
		return 0, 0, fmt.Errorf("file is nil")
	}

	width, height, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("unable to get terminal size: %w", err)
	}
	return width, height, nil
}

// PrintRoutes prints all registered routes to stdout in a formatted table.
// It is useful for development and debugging to see all available routes.
//
// Colors are only enabled in development mode; a colorprofile.Writer
// downsamples ANSI colors to match terminal capabilities and respects the
// NO_COLOR environment variable.
func (a *App) PrintRoutes() {
	if len(a.router.Routes()) == 0 {
		fmt.Println("No routes registered")
		return
	}

	w := a.getColorWriter(os.Stdout)
	a.renderRoutesTable(w, 120)
}
