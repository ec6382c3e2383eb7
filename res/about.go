package res

// AboutContent contains the Markdown content for the About dialog.
const AboutContent = `A small music player built with Go and Fyne.

**Features:**
- Stream the demo catalog or play local MP3 and WAV files
- Search by title or artist, browse by genre
- Favorites and listening stats for the session
- Desktop player bar and a full-screen player for narrow windows
- Dark and light themes
`
