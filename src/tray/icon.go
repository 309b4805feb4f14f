package tray

import "fyne.io/fyne/v2"

// Icon is the tray and window icon: a dashed selection frame with a small
// floating preview card.
var Icon = fyne.NewStaticResource("floatshot.svg", []byte(iconSVG))

const iconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 16 16" width="16" height="16">
  <rect x="1.5" y="1.5" width="9" height="7" fill="none" stroke="#0078d7" stroke-width="1.2" stroke-dasharray="2,1"/>
  <rect x="6" y="7" width="8.5" height="7.5" rx="1" fill="#ffffff" stroke="#333333" stroke-width="1"/>
  <rect x="7.5" y="8.5" width="5.5" height="3.5" fill="#0078d7" opacity="0.7"/>
  <line x1="8" y1="13.3" x2="12.5" y2="13.3" stroke="#666666" stroke-width="0.8"/>
</svg>`
