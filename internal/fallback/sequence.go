package fallback

import (
	"fmt"

	"go-image-describer/pkg/models"
)

// The sequence-diagram report is static prose about UML semantics with the
// image dimensions interpolated; without a successful vision call there is
// no real diagram content to describe.
const sequenceDiagramTemplate = `## 📋 Sequence Diagram Analysis

### 🔍 **Diagram Overview**
This appears to be a **UML Sequence Diagram**. Sequence diagrams show object interactions over time, with messages passed between objects.

### 📊 **Technical Details**
- **Image Size**: %d × %d pixels
- **Diagram Type**: UML Sequence Diagram
- **Reading Direction**: Left to Right (participants), Top to Bottom (time flow)

### 👥 **Participants/Lifelines**
Sequence diagrams typically include:
- **Actors**: External entities that interact with the system
- **Objects/System Components**: Internal system parts
- **Lifelines**: Vertical dashed lines showing object existence over time

### 💬 **Communication Patterns**
The diagram likely shows:
- **Synchronous Messages**: Solid arrows with filled heads (blocking calls)
- **Asynchronous Messages**: Open arrows (non-blocking calls)
- **Return Messages**: Dashed lines with open arrows
- **Self Messages**: Loops showing internal processing
- **Creation Messages**: Messages that create new objects

### 🎯 **Key Elements to Look For**
1. **Participants** (at the top): Actors, objects, system boundaries
2. **Lifelines** (vertical dashed lines): Object lifespans
3. **Activation Boxes** (rectangles on lifelines): When object is active
4. **Messages** (arrows): Communication between objects
5. **Combined Fragments** (frames): Loops, conditions, alternatives
6. **Notes** (cornered rectangles): Additional information

### 📝 **Analysis Suggestions**
To fully understand this sequence diagram:
- **Identify all participants** - Who/what are the main actors?
- **Follow message flow** - What triggers each interaction?
- **Note timing** - What happens sequentially vs. in parallel?
- **Look for patterns** - Request-response, queries, notifications

### ⚠️ **AI Enhancement Note**
For detailed content analysis (specific text and messages), you need a Google AI API with vision capabilities. The current analysis identifies this as a sequence diagram based on visual patterns and provides framework understanding.

### 🔧 **Next Steps**
1. If you have a vision-enabled API key, you'll get specific text extraction
2. Otherwise, you can manually extract text from the diagram using:
   - Participant names (top of each lifeline)
   - Message text (on/near arrows)
   - Conditions and loops (in combined fragments)
`

func buildSequenceDiagramReport(d models.ImageDescriptor) string {
	return fmt.Sprintf(sequenceDiagramTemplate, d.Width, d.Height)
}
