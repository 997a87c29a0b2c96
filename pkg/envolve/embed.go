package envolve

import "fmt"

// embedTags is the exact fragment the hosted widget loader parses. The
// variable names envoSn and env_commandString and the bootstrap URL are the
// contract with Envolve's JavaScript and must be reproduced byte for byte.
const embedTags = `<!-- Envolve Chat -->
<script type="text/javascript">
envoSn=%s;
env_commandString="%s";
</script>
<script type="text/javascript" src="%s"></script>`

// RenderEmbedTags returns the HTML snippet a hosting page drops in to start
// the chat widget. With a non-empty firstName it embeds a login command,
// otherwise a logout command.
//
// The command string is inserted between double quotes without escaping.
// Parameter values are base64-encoded so ordinary input cannot produce a
// quote, but the client IP is inserted raw; callers passing untrusted IP
// strings must sanitize them. This matches Envolve's reference helpers.
func (s *Signer) RenderEmbedTags(clientIP, firstName string, opts *LoginOptions) string {
	// BuildLoginCommand already falls back to logout on an empty name.
	command := s.BuildLoginCommand(clientIP, firstName, opts)
	return fmt.Sprintf(embedTags, s.SiteID, command, BootstrapURL)
}
