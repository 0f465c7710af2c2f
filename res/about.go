// Package res holds static content bundled with wavescope.
package res

// AboutContent contains the Markdown content for the About dialog.
const AboutContent = `An audio-reactive visualizer built with Go and Fyne.

**Modes:**
- Bars: one gradient bar per frequency bin
- Radial: spokes around a beating circle
- Wave: three drifting spectrum waves
- Particles: a drifting field linked by energy

**Keys:** space plays or pauses, 1-4 pick a mode, m cycles modes, r reseeds particles.
`
