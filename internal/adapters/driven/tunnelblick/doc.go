// Package tunnelblick drives the Tunnelblick macOS application.
//
// Two adapters live here. Controller implements [driven.VPNController]
// by scripting the running application: pgrep for liveness, open for
// launching, and osascript one-liners for everything else. Installer
// implements [driven.ProfileInstaller] by downloading OpenVPN profiles
// from the NordVPN CDN, wrapping them in .tblk bundles with the service
// credentials, and handing them to Tunnelblick via open.
//
// # Configuration bundles
//
// A .tblk bundle is a directory Tunnelblick imports on open. For a
// server de750.nordvpn.com over UDP the bundle looks like:
//
//	de750.nordvpn.com.udp.tblk/
//	    de750.nordvpn.com.udp.ovpn   the OpenVPN profile
//	    de750.nordvpn.com.udp.pass   username and password, mode 0600
//	    autoLogin                    marker enabling saved credentials
//
// Import is asynchronous, so Install watches Tunnelblick's configuration
// directories (fsnotify, with a polling fallback) until the bundle
// appears or the registration window expires.
//
// # Scripting
//
// Every osascript call is bounded by a timeout. When the application is
// not running, osascript fails with a recognisable message which the
// controller maps to [domain.ErrNotRunning].
package tunnelblick
